package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sarthakjha889/slang-trie/internal/dictionary"
	"github.com/sarthakjha889/slang-trie/internal/quiz"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

// writeError maps dictionary and quiz errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dictionary.ErrNotFound), errors.Is(err, dictionary.ErrEmpty):
		status = http.StatusNotFound
	case errors.Is(err, dictionary.ErrExists), errors.Is(err, quiz.ErrNotEnoughWords):
		status = http.StatusConflict
	case errors.Is(err, dictionary.ErrInvalid), errors.Is(err, dictionary.ErrIndexOutOfRange):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
