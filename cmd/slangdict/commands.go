package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/sarthakjha889/slang-trie/internal/api"
	"github.com/sarthakjha889/slang-trie/internal/dictionary"
	"github.com/sarthakjha889/slang-trie/internal/quiz"
	"github.com/sarthakjha889/slang-trie/internal/slangfile"
)

var errUsage = errors.New("wrong number of arguments")

func (a *app) run(command string, args []string) error {
	switch command {
	case "lookup":
		return a.lookup(args)
	case "complete":
		return a.complete(args)
	case "define":
		return a.define(args)
	case "add":
		return a.add(args)
	case "add-def":
		return a.addDefinition(args)
	case "edit":
		return a.edit(args)
	case "rename":
		return a.rename(args)
	case "delete":
		return a.delete(args)
	case "reset":
		a.dict.Reset()
		return a.save()
	case "random":
		return a.random()
	case "history":
		return a.history()
	case "clear-history":
		a.dict.ClearHistory()
		return a.save()
	case "quiz":
		return a.runQuiz(args)
	case "export":
		return a.export(args)
	case "serve":
		return a.serve()
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) lookup(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("lookup <word>: %w", errUsage)
	}
	defs, ok := a.dict.Lookup(args[0])
	if !ok {
		fmt.Fprintf(a.out, "%q not found\n", args[0])
		if similar := a.dict.Complete(args[0]); len(similar) > 0 {
			fmt.Fprintf(a.out, "Words starting with %q: %s\n", args[0], strings.Join(similar, ", "))
		}
	} else {
		a.printDefinitions(args[0], defs)
	}
	return a.save()
}

func (a *app) complete(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("complete [prefix]: %w", errUsage)
	}
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	for _, word := range a.dict.Complete(prefix) {
		fmt.Fprintln(a.out, word)
	}
	return nil
}

func (a *app) define(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("define <keyword>: %w", errUsage)
	}
	words := a.dict.SearchByDefinition(strings.Join(args, " "))
	if len(words) == 0 {
		fmt.Fprintln(a.out, "No matching slang words")
	}
	for _, word := range words {
		defs, _ := a.dict.Definitions(word)
		fmt.Fprintf(a.out, "%s -> %s\n", word, strings.Join(defs, " | "))
	}
	return a.save()
}

func (a *app) add(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	modeName := fs.String("mode", "new", "What to do with an existing word: new, overwrite or duplicate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("add <word> <definition>: %w", errUsage)
	}
	mode, err := dictionary.ParseAddMode(*modeName)
	if err != nil {
		return err
	}
	word := fs.Arg(0)
	if err := a.dict.Add(word, strings.Join(fs.Args()[1:], " "), mode); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %q\n", word)
	return a.save()
}

func (a *app) addDefinition(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("add-def <word> <definition>: %w", errUsage)
	}
	if err := a.dict.AddDefinition(args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	return a.save()
}

func (a *app) edit(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("edit <word> <n> <definition>: %w", errUsage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("definition number %q: %w", args[1], err)
	}
	if err := a.dict.EditDefinition(args[0], n-1, strings.Join(args[2:], " ")); err != nil {
		return err
	}
	return a.save()
}

func (a *app) rename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("rename <word> <new word>: %w", errUsage)
	}
	if err := a.dict.Rename(args[0], args[1]); err != nil {
		return err
	}
	return a.save()
}

func (a *app) delete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete <word>: %w", errUsage)
	}
	if err := a.dict.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q\n", args[0])
	return a.save()
}

func (a *app) random() error {
	word, defs, err := a.dict.Random()
	if err != nil {
		return err
	}
	a.printDefinitions(word, defs)
	return nil
}

func (a *app) history() error {
	history := a.dict.History()
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No search history")
	}
	for i, h := range history {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, h)
	}
	return nil
}

func (a *app) runQuiz(args []string) error {
	kind := quiz.GuessDefinition
	if len(args) > 0 {
		k, err := quiz.ParseKind(args[0])
		if err != nil {
			return err
		}
		kind = k
	}
	q, err := a.quiz.Next(kind)
	if err != nil {
		return err
	}

	if q.Kind == quiz.GuessDefinition {
		fmt.Fprintf(a.out, "What does %q mean?\n", q.Prompt)
	} else {
		fmt.Fprintf(a.out, "Which slang word means %q?\n", q.Prompt)
	}
	for i, option := range q.Options {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, option)
	}
	fmt.Fprintf(a.out, "Your answer (1-%d): ", len(q.Options))

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read answer: %w", err)
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 1 || choice > len(q.Options) {
		fmt.Fprintln(a.out, "Invalid option!")
		return nil
	}
	if q.Check(choice - 1) {
		fmt.Fprintf(a.out, "Correct! The answer is: %s\n", q.Correct())
	} else {
		fmt.Fprintf(a.out, "Wrong! The correct answer is: %s\n", q.Correct())
	}
	return nil
}

func (a *app) export(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("export <file>: %w", errUsage)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := slangfile.Write(f, a.dict.Entries()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *app) serve() error {
	server := api.NewServer(a.cfg.Server.Addr, a.dict, a.quiz, a.store)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return a.save()
}

func (a *app) printDefinitions(word string, defs []string) {
	fmt.Fprintf(a.out, "%s:\n", word)
	for i, def := range defs {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, def)
	}
}
