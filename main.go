package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aocbot/internal/di"
	"aocbot/internal/structures"

	"github.com/spf13/pflag"
)

const usage = `Usage:
  aocbot run <input> <output> [--env-file FILE] [--post-to-slack] [--config FILE] [--debug]
  aocbot serve [--config FILE] [--env-file FILE] [--debug]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(ctx, os.Args[2:])
	case "serve":
		err = serveCommand(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "aocbot: %s\n", err)
		stop()
		os.Exit(1)
	}
}

func newFlagSet(name string, flags *structures.CliFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&flags.ConfigPath, "config", "c", "", "path to a yaml config file")
	fs.StringVar(&flags.EnvFile, "env-file", "", "json, yaml, toml or dotenv file with AOC_* and SLACK_* settings")
	fs.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging")
	return fs
}

func runCommand(ctx context.Context, args []string) error {
	flags := &structures.CliFlags{}
	fs := newFlagSet("run", flags)
	fs.BoolVar(&flags.PostToSlack, "post-to-slack", false, "post computed messages to the Slack webhook")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	runner, err := di.InitRunner(flags)
	if err != nil {
		return err
	}
	return runner.Run(ctx, fs.Arg(0), fs.Arg(1))
}

func serveCommand(ctx context.Context, args []string) error {
	flags := &structures.CliFlags{PostToSlack: true}
	fs := newFlagSet("serve", flags)
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := di.InitServer(flags)
	if err != nil {
		return err
	}
	return app.Serve(ctx)
}
