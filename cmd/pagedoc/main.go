package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagedoc"
	"github.com/fwojciec/pagedoc/gdocs"
	"github.com/fwojciec/pagedoc/goquery"
	"github.com/fwojciec/pagedoc/htmltomarkdown"
	pdhttp "github.com/fwojciec/pagedoc/http"
	"github.com/fwojciec/pagedoc/oauth"
	"github.com/fwojciec/pagedoc/publish"
	"github.com/fwojciec/pagedoc/readability"
	"github.com/fwojciec/pagedoc/relay"
	"github.com/fwojciec/pagedoc/rod"
	pdslog "github.com/fwojciec/pagedoc/slog"
	"github.com/fwojciec/pagedoc/sqlite"
	"github.com/fwojciec/pagedoc/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin answers the authorization prompt.
	Stdin io.Reader

	// SQLite database holding publication history.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagedoc"),
		kong.Description("Publish web pages as Google Docs documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"db_path":    defaultDBPath(),
			"token_path": defaultTokenPath(),
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagedoc --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	deps.TokenPath = cli.Token

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "auth":
		if err := m.wireAuth(deps, cli); err != nil {
			return err
		}
	case "publish":
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		deps.Publications = sqlite.NewPublicationService(m.DB)
		if err := m.wirePublisher(deps, cli, cli.Publish.FetchFlags); err != nil {
			return err
		}
		docs, err := m.documentService(deps, cli)
		if err != nil {
			return err
		}
		deps.Publisher.Documents = docs
		deps.Publisher.Publications = deps.Publications
	case "preview":
		if err := m.wirePublisher(deps, cli, cli.Preview.FetchFlags); err != nil {
			return err
		}
		deps.Converter = htmltomarkdown.NewConverter()
	case "history":
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		deps.Publications = sqlite.NewPublicationService(m.DB)
	case "relay":
		if err := m.wireRelay(deps, cli); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set PAGEDOC_DB to use a different database path")
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func (m *Main) wireAuth(deps *Dependencies, cli *CLI) error {
	cfg, err := oauth.LoadConfig(cli.Credentials, gdocs.Scopes...)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Download an OAuth client file from the Google Cloud console and set PAGEDOC_CREDENTIALS")
		return err
	}
	store := oauth.NewFileTokenStore(cli.Token)
	prompt := oauth.StdinPrompter(deps.Stdin, deps.Stderr)
	deps.Authorize = func(ctx context.Context) error {
		_, err := oauth.Authorize(ctx, cfg, store, prompt)
		return err
	}
	return nil
}

func (m *Main) documentService(deps *Dependencies, cli *CLI) (pagedoc.DocumentService, error) {
	cfg, err := oauth.LoadConfig(cli.Credentials, gdocs.Scopes...)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Download an OAuth client file from the Google Cloud console and set PAGEDOC_CREDENTIALS")
		return nil, err
	}

	client, err := oauth.Client(deps.Ctx, cfg, oauth.NewFileTokenStore(cli.Token), oauth.StdinPrompter(deps.Stdin, deps.Stderr))
	if err != nil {
		return nil, err
	}

	svc, err := gdocs.NewDocumentService(deps.Ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}
	if cli.Verbose {
		return pdslog.NewLoggingDocumentService(svc, deps.Logger), nil
	}
	return svc, nil
}

func (m *Main) wirePublisher(deps *Dependencies, cli *CLI, opts FetchFlags) error {
	var fetcher pagedoc.Fetcher
	if opts.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(opts.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = pdhttp.NewFetcher(pdhttp.WithTimeout(opts.Timeout), pdhttp.WithMaxBytes(opts.MaxBytes))
	}
	m.closers = append(m.closers, fetcher.Close)

	if cli.Verbose {
		fetcher = pdslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var cleaner pagedoc.Cleaner
	switch opts.Clean {
	case "trafilatura":
		cleaner = trafilatura.NewCleaner()
	case "readability":
		cleaner = readability.NewCleaner()
	}

	deps.Sitemaps = pdhttp.NewSitemapService(nil)
	if cli.Verbose {
		deps.Sitemaps = pdslog.NewLoggingSitemapService(deps.Sitemaps, deps.Logger)
	}
	deps.Publisher = &publish.Publisher{
		Fetcher:     fetcher,
		Cleaner:     cleaner,
		Extractor:   goquery.NewContentExtractor(),
		RateLimiter: publish.NewDomainLimiter(opts.Rate),
		Logf: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, "  "+format+"\n", args...)
		},
	}
	return nil
}

func (m *Main) wireRelay(deps *Dependencies, cli *CLI) error {
	hook, err := pdhttp.NewWebhook(cli.Relay.Webhook)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set PAGEDOC_WEBHOOK_URL to the automation webhook address")
		return err
	}

	var forward pagedoc.Webhook = hook
	if cli.Verbose {
		forward = pdslog.NewLoggingWebhook(hook, deps.Logger)
	}

	deps.Relay = relay.NewServer(&relay.ResultSlot{}, forward, deps.Logger, relay.WithBasePath(cli.Relay.Prefix))
	deps.Serve = relay.ListenAndServe
	return nil
}

func defaultDBPath() string {
	return filepath.Join(configDir(), "pagedoc.db")
}

func defaultTokenPath() string {
	return filepath.Join(configDir(), "token.json")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".pagedoc")
}
