package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (YAML)")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		showHelp()
		os.Exit(0)
	}
	if flag.NArg() == 0 {
		showHelp()
		os.Exit(1)
	}

	a, err := newApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slangdict: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if err := a.run(args[0], args[1:]); err != nil {
		log.Error().Err(err).Str("command", args[0]).Msg("Command failed")
		os.Exit(1)
	}
}

func showHelp() {
	helpText := `Slang dictionary

Usage:
  slangdict [flags] <command> [arguments]

Flags:
  -config string   Path to a config file (YAML)
  -help            Show help message

Commands:
  lookup <word>                     Show the definitions of a word
  complete [prefix]                 List words starting with prefix
  define <keyword>                  List words whose definitions contain keyword
  add [-mode new|overwrite|duplicate] <word> <definition>
  add-def <word> <definition>       Append a definition
  edit <word> <n> <definition>      Replace definition n (counting from 1)
  rename <word> <new word>          Rename a word
  delete <word>                     Delete a word
  reset                             Restore the original dictionary
  random                            Show a random word
  history                           Show the search history
  clear-history                     Forget the search history
  quiz [definition|word]            Answer a multiple choice question
  export <file>                     Write the dictionary as a slang list
  serve                             Serve the JSON API

Environment variables prefixed with SLANGDICT override config values,
e.g. SLANGDICT_SERVER_ADDR=:9090.
`
	fmt.Fprint(os.Stderr, helpText)
}
