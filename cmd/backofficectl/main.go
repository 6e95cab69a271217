package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"golang.org/x/text/language"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/cli"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/config"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/logger"
)

var locale = flag.String("locale", "es-AR", "Locale used to format amounts")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	// Reports go to stdout, so logs stay on stderr.
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Out: os.Stderr})

	env := &cli.Env{
		Open: func(ctx context.Context) (*app.App, error) {
			return app.Open(ctx, cfg, log)
		},
		Out: os.Stdout,
		Err: os.Stderr,
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, env)

	flag.Parse()

	tag, err := language.Parse(*locale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -locale %q: %v\n", *locale, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	env.Locale = tag

	os.Exit(int(commander.Execute(context.Background())))
}
