package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/pubdesk"
	"github.com/eringen/pubdesk/scaffold"
)

// version is set at build time via ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "version":
		fmt.Printf("pubdesk %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := pubdesk.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	logger, err := pubdesk.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("version", version))

	app := pubdesk.New(cfg, pubdesk.DefaultViews(), pubdesk.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		app.Close()
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	name := fs.String("name", "pubdesk", "site name shown in the sidebar")
	apiURL := fs.String("api", "http://localhost:8080/api", "content API base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	secret, err := scaffold.NewSecret()
	if err != nil {
		return err
	}

	fmt.Printf("Writing pubdesk config to %s\n\n", dir)
	if err := scaffold.Write(dir, scaffold.Data{SiteName: *name, APIURL: *apiURL, SessionSecret: secret}, os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Println("  cp .env.example .env")
	fmt.Println("  pubdesk serve -config pubdesk.yaml")
	return nil
}

func printUsage() {
	fmt.Println(`pubdesk - the editing front-end for a remote content API

Usage:
  pubdesk <command> [arguments]

Commands:
  serve [-config file]             Run the web server
  init [-name n] [-api url] [dir]  Write a starter pubdesk.yaml and .env.example
  version                          Print the pubdesk version
  help                             Show this help message

Examples:
  pubdesk init -api https://api.example.com/v1
  pubdesk serve -config pubdesk.yaml`)
}
