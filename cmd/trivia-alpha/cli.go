package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
	"github.com/ViewtifulSlayer/trivia-alpha/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Rules      *config.Rules
	Documents  trivia.DocumentStore
	Checkpoint trivia.CheckpointService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Rules   string `help:"Path to a YAML rules file overriding the defaults"`

	Extract   ExtractCmd   `cmd:"" help:"Extract every character page from a wiki dump"`
	Character CharacterCmd `cmd:"" help:"Extract a single character page and print its JSON"`
	Cleanup   CleanupCmd   `cmd:"" help:"Remove minimal documents from the store"`
	Status    StatusCmd    `cmd:"" help:"Show checkpoint and store statistics"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Dump        string `arg:"" help:"Page dump: a JSON pages file or a MediaWiki XML export"`
	Out         string `short:"o" default:"characters" help:"Output directory for JSON documents"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent extraction limit"`
	Limit       int    `short:"n" help:"Stop after this many extracted documents"`
	Fresh       bool   `help:"Ignore the checkpoint and reprocess everything"`
}

// CharacterCmd is the "character" subcommand.
type CharacterCmd struct {
	Dump  string `arg:"" help:"Page dump: a JSON pages file or a MediaWiki XML export"`
	Title string `arg:"" help:"Exact page title"`
}

// CleanupCmd is the "cleanup" subcommand.
type CleanupCmd struct {
	DryRun bool `help:"Report what would be removed without deleting"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
