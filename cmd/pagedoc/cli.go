package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/pagedoc"
	"github.com/fwojciec/pagedoc/publish"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Publisher    *publish.Publisher
	Publications pagedoc.PublicationService
	Sitemaps     pagedoc.SitemapService
	Converter    pagedoc.Converter

	// Authorize runs the OAuth consent flow and stores the token at TokenPath.
	Authorize func(ctx context.Context) error
	TokenPath string

	Relay http.Handler
	Serve func(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Credentials string `env:"PAGEDOC_CREDENTIALS" default:"credentials.json" help:"OAuth client credentials file"`
	Token       string `env:"PAGEDOC_TOKEN" default:"${token_path}" help:"Where the OAuth token is stored"`
	DB          string `name:"db" env:"PAGEDOC_DB" default:"${db_path}" help:"Publication history database"`
	Verbose     bool   `short:"v" help:"Log every fetch and document call"`

	Auth    AuthCmd    `cmd:"" help:"Authorize access to Google Docs"`
	Publish PublishCmd `cmd:"" help:"Publish pages as Google Docs documents"`
	Preview PreviewCmd `cmd:"" help:"Show the content that would be published"`
	History HistoryCmd `cmd:"" help:"List past publications"`
	Relay   RelayCmd   `cmd:"" help:"Serve the webhook relay form"`
}

// FetchFlags configure how pages are retrieved.
type FetchFlags struct {
	Browser  bool          `short:"b" help:"Render pages in headless Chrome before extracting"`
	Clean    string        `enum:"none,trafilatura,readability" default:"none" help:"Strip page boilerplate first (none, trafilatura, readability)"`
	Timeout  time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Rate     float64       `default:"1" help:"Maximum requests per second per host (0 disables)"`
	MaxBytes int64         `name:"max-bytes" default:"10485760" help:"Largest page body to download without --browser, in bytes (0 for no limit)"`
}

// AuthCmd is the "auth" subcommand.
type AuthCmd struct{}

// PublishCmd is the "publish" subcommand.
type PublishCmd struct {
	URLSource
	KeepGoing     bool `short:"k" help:"Continue with the next URL when one fails"`
	SkipUnchanged bool `help:"Skip pages whose content matches their last publication"`
	FetchFlags
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URLSource
	Format string `short:"o" enum:"text,ops,markdown" default:"text" help:"Output format (text, ops, markdown)"`
	FetchFlags
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `arg:"" optional:"" help:"Only show publications of this page"`
	Limit int    `short:"n" default:"20" help:"Maximum number of entries"`
	JSON  bool   `help:"Print as JSON"`
}

// RelayCmd is the "relay" subcommand.
type RelayCmd struct {
	Addr    string `env:"PAGEDOC_ADDR" default:":3000" help:"Listen address"`
	Webhook string `env:"PAGEDOC_WEBHOOK_URL" help:"Automation webhook that receives submitted URLs"`
	Prefix  string `default:"/" help:"Path the relay is mounted under, e.g. /zapier"`
}
