package main

import (
	"context"
	"io"
	"log/slog"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/pipeline"
	"github.com/codermillat/WebScrape-sub000/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Captures webscrape.CaptureService
	Memory   webscrape.LineMemory
	Writer   webscrape.FileWriter
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Capture CaptureCmd `cmd:"" help:"Extract one or more pages and store labeled captures"`
	List    ListCmd    `cmd:"" help:"List captured pages and their captures"`
	Select  SelectCmd  `cmd:"" help:"Mark a capture selected or unselected for export"`
	Export  ExportCmd  `cmd:"" help:"Combine a page's selected captures into chunked prompt files"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a capture or a whole page"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URLs        []string `arg:"" help:"Page URLs to capture"`
	Label       string   `short:"l" help:"Label stored with each capture"`
	Extended    bool     `short:"e" help:"Also fetch same-origin pagination/tab pages"`
	Dynamic     bool     `short:"d" help:"Sweep tabs/accordions/pagination in a live browser"`
	Force       bool     `short:"f" help:"Insert even if the content signature already exists"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent capture limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Key  string `arg:"" optional:"" help:"Page key to show in detail"`
	Full bool   `help:"Show capture previews"`
}

// SelectCmd is the "select" subcommand.
type SelectCmd struct {
	CaptureID string `arg:"" help:"Capture ID"`
	Off       bool   `help:"Unselect instead of select"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Key          string `arg:"" help:"Page key to export"`
	MaxChunkSize int    `default:"6000" help:"Maximum chunk size in bytes"`
	MinChunkSize int    `default:"1200" help:"Minimum chunk size before merging into the previous chunk"`
	Raw          bool   `help:"Export combined text without prompt wrapping"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Capture string `help:"Capture ID to delete" xor:"target"`
	Page    string `help:"Page key to delete" xor:"target"`
}
