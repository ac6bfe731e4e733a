// Package api exposes a dictionary as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/sarthakjha889/slang-trie/internal/dictionary"
	"github.com/sarthakjha889/slang-trie/internal/quiz"
)

// Saver persists the dictionary after a change.
type Saver interface {
	Save(*dictionary.Snapshot) error
}

// Server represents the HTTP API server
type Server struct {
	dict   *dictionary.Dictionary
	server *http.Server

	saveMu sync.Mutex
	saver  Saver

	// quiz generators are not safe for concurrent use
	quizMu sync.Mutex
	quiz   *quiz.Generator
}

// NewServer creates a new API server. saver may be nil.
func NewServer(addr string, dict *dictionary.Dictionary, questions *quiz.Generator, saver Saver) *Server {
	s := &Server{
		dict:  dict,
		saver: saver,
		quiz:  questions,
	}

	// Match on the escaped path so words holding a slash, like w/e, can be
	// addressed as /words/w%2Fe.
	r := mux.NewRouter().UseEncodedPath()
	r.Use(logRequests)

	r.HandleFunc("/words", s.completeWords).Methods(http.MethodGet)
	r.HandleFunc("/words", s.addWord).Methods(http.MethodPost)
	r.HandleFunc("/words/{word}", s.lookupWord).Methods(http.MethodGet)
	r.HandleFunc("/words/{word}", s.deleteWord).Methods(http.MethodDelete)
	r.HandleFunc("/words/{word}/definitions", s.addDefinition).Methods(http.MethodPost)
	r.HandleFunc("/words/{word}/definitions/{index:[0-9]+}", s.editDefinition).Methods(http.MethodPut)
	r.HandleFunc("/words/{word}/rename", s.renameWord).Methods(http.MethodPost)

	r.HandleFunc("/definitions", s.searchDefinitions).Methods(http.MethodGet)
	r.HandleFunc("/history", s.listHistory).Methods(http.MethodGet)
	r.HandleFunc("/history", s.clearHistory).Methods(http.MethodDelete)
	r.HandleFunc("/random", s.randomWord).Methods(http.MethodGet)
	r.HandleFunc("/reset", s.reset).Methods(http.MethodPost)
	r.HandleFunc("/quiz/{kind}", s.nextQuestion).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured address and blocks until the server is shut
// down.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	log.Info().Str("addr", listener.Addr().String()).Msg("Serving slang dictionary")
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("Handled request")
	})
}

type wordResponse struct {
	Word        string   `json:"word"`
	Definitions []string `json:"definitions"`
}

type addWordRequest struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Mode       string `json:"mode"`
}

type definitionRequest struct {
	Definition string `json:"definition"`
}

type renameRequest struct {
	To string `json:"to"`
}

func (s *Server) completeWords(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prefix": prefix,
		"words":  s.dict.Complete(prefix),
	})
}

func (s *Server) lookupWord(w http.ResponseWriter, r *http.Request) {
	word, ok := pathVar(w, r, "word")
	if !ok {
		return
	}
	defs, ok := s.dict.Lookup(word)
	s.persist()
	if !ok {
		writeError(w, fmt.Errorf("%w: %q", dictionary.ErrNotFound, word))
		return
	}
	writeJSON(w, http.StatusOK, wordResponse{Word: word, Definitions: defs})
}

func (s *Server) addWord(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if !decode(w, r, &req) {
		return
	}
	mode, err := dictionary.ParseAddMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.dict.Add(req.Word, req.Definition, mode); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	s.writeWord(w, http.StatusCreated, req.Word)
}

func (s *Server) deleteWord(w http.ResponseWriter, r *http.Request) {
	word, ok := pathVar(w, r, "word")
	if !ok {
		return
	}
	if err := s.dict.Delete(word); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addDefinition(w http.ResponseWriter, r *http.Request) {
	word, ok := pathVar(w, r, "word")
	if !ok {
		return
	}
	var req definitionRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.dict.AddDefinition(word, req.Definition); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	s.writeWord(w, http.StatusOK, word)
}

func (s *Server) editDefinition(w http.ResponseWriter, r *http.Request) {
	word, ok := pathVar(w, r, "word")
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid definition index"})
		return
	}
	var req definitionRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.dict.EditDefinition(word, index, req.Definition); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	s.writeWord(w, http.StatusOK, word)
}

func (s *Server) renameWord(w http.ResponseWriter, r *http.Request) {
	word, ok := pathVar(w, r, "word")
	if !ok {
		return
	}
	var req renameRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.dict.Rename(word, req.To); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	s.writeWord(w, http.StatusOK, req.To)
}

func (s *Server) searchDefinitions(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing query parameter q"})
		return
	}
	words := s.dict.SearchByDefinition(keyword)
	s.persist()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": keyword,
		"words": words,
	})
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	history := s.dict.History()
	if history == nil {
		history = []dictionary.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	s.dict.ClearHistory()
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) randomWord(w http.ResponseWriter, r *http.Request) {
	word, defs, err := s.dict.Random()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wordResponse{Word: word, Definitions: defs})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.dict.Reset()
	s.persist()
	writeJSON(w, http.StatusOK, map[string]int{"words": s.dict.Len()})
}

func (s *Server) nextQuestion(w http.ResponseWriter, r *http.Request) {
	name, ok := pathVar(w, r, "kind")
	if !ok {
		return
	}
	kind, err := quiz.ParseKind(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	s.quizMu.Lock()
	q, err := s.quiz.Next(kind)
	s.quizMu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) writeWord(w http.ResponseWriter, status int, word string) {
	defs, _ := s.dict.Definitions(word)
	writeJSON(w, status, wordResponse{Word: word, Definitions: defs})
}

// persist saves the dictionary. A failed save is logged; the change stays in
// memory.
func (s *Server) persist() {
	if s.saver == nil {
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.saver.Save(s.dict.Snapshot()); err != nil {
		log.Error().Err(err).Msg("Failed to save dictionary")
	}
}

// pathVar returns the unescaped route variable name. On a malformed escape it
// answers 400 and reports false.
func pathVar(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid %s in path", name)})
		return "", false
	}
	return v, true
}
