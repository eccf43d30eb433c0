package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/joho/godotenv"
	"github.com/shamanicarts/ortr/internal/config"
	"github.com/shamanicarts/ortr/internal/host"
	"github.com/shamanicarts/ortr/internal/jsonrpc"
	"github.com/shamanicarts/ortr/internal/models"
	"github.com/shamanicarts/ortr/internal/openrouter"
	"github.com/shamanicarts/ortr/internal/relay"
	"github.com/shamanicarts/ortr/internal/utils"
)

const usage = `ortr - query OpenRouter models from a launcher-style prompt

Prerequisites:
  - Set the OPENROUTER_API_KEY environment variable to your OpenRouter API key,
    or store one with 'ortr setkey YOUR_API_KEY'
  - (Optional) Put the key in a .env file in the working directory
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: ortr [flags] <input>

The input is the same grammar a launcher would relay:
  ortr setkey YOUR_API_KEY     Save your OpenRouter API key
  ortr models                  List available models
  ortr setmodel MODEL_ID       Set the default model
  ortr <question>              Ask the default model a question

Flags:
  -pick n     Execute the action of result row n after rendering (copy/editor).
  -rpc bool   Serve a single launcher JSON-RPC request from stdin instead.

Examples:
  - ortr setkey sk-or-v1-abc123
  - ortr models
  - ortr setmodel openai/gpt-4o
  - ortr What is the capital of France?
  - ortr -pick 0 What is the capital of France?
  - echo '{"method":"query","parameters":["models"]}' | ortr -rpc
`

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("ortr", flag.ContinueOnError)
	pick := flags.Int("pick", -1, "execute the action of result row n")
	rpc := flags.Bool("rpc", false, "serve a single JSON-RPC request from stdin")
	help := flags.Bool("help", false, "print usage")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if *help || (len(args) > 0 && (args[0] == "help" || args[0] == "h")) {
		fmt.Print(usage)
		return 0
	}

	// A .env is optional, absence is the common case
	if err := godotenv.Load(); err != nil && misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintWarn(fmt.Sprintf("no .env loaded: %v\n", err))
	}

	configDirPath, err := utils.EnsureOrtrConfigDir()
	if err != nil {
		ancli.Errf("failed to set up config dir: %v", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()

	store := config.NewFileStore(configDirPath)
	client := openrouter.New()
	rly := relay.New(store, client, client)

	if *rpc {
		if err := jsonrpc.Serve(ctx, rly, os.Stdin, os.Stdout); err != nil {
			ancli.PrintErr(fmt.Sprintf("failed to serve rpc request: %v\n", err))
			return 1
		}
		return 0
	}

	raw := strings.Join(flags.Args(), " ")
	items := rly.HandleQuery(ctx, raw)
	render(items)

	if *pick >= 0 {
		if *pick >= len(items) {
			ancli.PrintErr(fmt.Sprintf("no result row %v, got %v rows\n", *pick, len(items)))
			return 1
		}
		if err := host.Execute(items[*pick]); err != nil {
			ancli.PrintErr(fmt.Sprintf("failed to execute action: %v\n", err))
			return 1
		}
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("all done, bye bye!\n")
	}
	return 0
}

func render(items []models.ResultItem) {
	width := utils.TermWidth()
	for i, item := range items {
		title := utils.Truncate(item.Title, width-4)
		fmt.Printf("%2d. %v\n", i, ancli.ColoredMessage(ancli.CYAN, title))
		if item.Subtitle != "" {
			fmt.Printf("    %v\n", utils.Truncate(item.Subtitle, width-4))
		}
	}
}
