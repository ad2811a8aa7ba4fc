// Package oauth authorizes pagedoc against Google APIs with the OAuth2
// installed-application flow.
package oauth

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/pagedoc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LoadConfig reads an OAuth2 client credentials file downloaded from the
// Google Cloud console. Both "installed" and "web" client types are accepted.
func LoadConfig(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "reading credentials file %q: %v", path, err)
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "invalid credentials file %q: expected \"installed\" or \"web\" client: %v", path, err)
	}
	return cfg, nil
}

// FileTokenStore persists an OAuth2 token as JSON on disk.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a FileTokenStore backed by path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load reads the stored token. Returns ENOTFOUND if no token has been saved.
func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pagedoc.Errorf(pagedoc.ENOTFOUND, "no token at %q", s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "invalid token file %q: %v", s.path, err)
	}
	return &tok, nil
}

// Save writes tok, readable only by the current user.
func (s *FileTokenStore) Save(tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Prompter shows authURL to the user and returns the authorization code
// they paste back.
type Prompter func(ctx context.Context, authURL string) (code string, err error)

// StdinPrompter prints the consent URL to out and reads the code from in.
func StdinPrompter(in io.Reader, out io.Writer) Prompter {
	return func(ctx context.Context, authURL string) (string, error) {
		fmt.Fprintf(out, "Authorize this app by visiting this url:\n%s\n\n", authURL)
		fmt.Fprint(out, "Enter the code from that page here: ")

		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		code := strings.TrimSpace(line)
		if code == "" {
			return "", pagedoc.Errorf(pagedoc.EUNAUTHORIZED, "no authorization code entered")
		}
		return code, nil
	}
}

// Authorize runs the consent flow, exchanges the code for a token and saves it.
func Authorize(ctx context.Context, cfg *oauth2.Config, store *FileTokenStore, prompt Prompter) (*oauth2.Token, error) {
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	code, err := prompt(ctx, authURL)
	if err != nil {
		return nil, err
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, pagedoc.Errorf(pagedoc.EUNAUTHORIZED, "exchanging authorization code: %v", err)
	}
	if err := store.Save(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// Client returns an HTTP client authorized with the stored token. When no
// token is stored and prompt is non-nil, the consent flow runs first.
// Refreshed tokens are written back to the store.
func Client(ctx context.Context, cfg *oauth2.Config, store *FileTokenStore, prompt Prompter) (*http.Client, error) {
	tok, err := store.Load()
	if pagedoc.ErrorCode(err) == pagedoc.ENOTFOUND {
		if prompt == nil {
			return nil, pagedoc.Errorf(pagedoc.EUNAUTHORIZED, "not authorized; run 'pagedoc auth' first")
		}
		tok, err = Authorize(ctx, cfg, store, prompt)
	}
	if err != nil {
		return nil, err
	}

	src := &savingTokenSource{
		next:  cfg.TokenSource(ctx, tok),
		store: store,
		last:  tok.AccessToken,
	}
	return oauth2.NewClient(ctx, src), nil
}

// savingTokenSource saves every newly issued access token.
type savingTokenSource struct {
	next  oauth2.TokenSource
	store *FileTokenStore

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.next.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.store.Save(tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}
