package spreadsheet

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"golang.org/x/sync/singleflight"
)

// FeedsScope is the OAuth2 scope for the spreadsheet feeds.
const FeedsScope = "https://spreadsheets.google.com/feeds"

type AuthMode int

const (
	Anonymous AuthMode = iota
	TokenAuth
	ServiceAccount
)

func (m AuthMode) String() string {
	switch m {
	case Anonymous:
		return "anonymous"
	case TokenAuth:
		return "token"
	case ServiceAccount:
		return "service-account"
	default:
		return fmt.Sprintf("unknown (%d)", int(m))
	}
}

// Token is an access token for the feeds. Type is the token type issued with it
// (e.g. "Bearer"); any other type is sent as a legacy GoogleLogin token. A zero
// Expires never expires.
type Token struct {
	Type    string
	Value   string
	Expires time.Time
}

func (t Token) header() string {
	if strings.EqualFold(t.Type, "bearer") {
		return "Bearer " + t.Value
	}

	return "GoogleLogin auth=" + t.Value
}

// ServiceAccountCredentials are the fields of a service account key used to sign
// token requests.
type ServiceAccountCredentials struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

var transitions = map[AuthMode][]AuthMode{
	Anonymous: {TokenAuth, ServiceAccount},
	TokenAuth: {TokenAuth},
}

// auth holds the single live credential of a client. The mode only ever moves
// forward, through transition.
type auth struct {
	sync.Mutex
	mode   AuthMode
	token  *Token
	source oauth2.TokenSource
	flight singleflight.Group
	now    func() time.Time
}

func (a *auth) transition(to AuthMode, token *Token, source oauth2.TokenSource) error {
	a.Lock()
	defer a.Unlock()

	for _, m := range transitions[a.mode] {
		if m == to {
			a.mode = to
			a.token = token
			a.source = source
			return nil
		}
	}

	return fmt.Errorf("%v -> %v (%w)", a.mode, to, ErrAuthTransition)
}

func (a *auth) Mode() AuthMode {
	a.Lock()
	defer a.Unlock()

	return a.mode
}

// current returns the token to send with a request, refreshing an expired service
// account token first. Concurrent callers share a single refresh.
func (a *auth) current() (*Token, error) {
	a.Lock()
	mode, token := a.mode, a.token
	expired := a.expired(token)
	a.Unlock()

	if mode != ServiceAccount || !expired {
		return token, nil
	}

	v, err, _ := a.flight.Do("refresh", func() (any, error) {
		a.Lock()
		token, source := a.token, a.source
		if !a.expired(token) {
			a.Unlock()
			return token, nil
		}
		a.Unlock()

		t, err := fetch(source)
		if err != nil {
			return nil, err
		}

		a.Lock()
		a.token = t
		a.Unlock()

		return t, nil
	})

	if err != nil {
		return nil, fmt.Errorf("error refreshing service account token (%w)", err)
	}

	return v.(*Token), nil
}

func (a *auth) expired(t *Token) bool {
	if t == nil {
		return true
	}

	if t.Expires.IsZero() {
		return false
	}

	return !a.clock().Before(t.Expires)
}

func (a *auth) clock() time.Time {
	if a.now != nil {
		return a.now()
	}

	return time.Now()
}

func fetch(source oauth2.TokenSource) (*Token, error) {
	t, err := source.Token()
	if err != nil {
		return nil, err
	}

	return &Token{
		Type:    t.Type(),
		Value:   t.AccessToken,
		Expires: t.Expiry,
	}, nil
}

// SetAuthToken switches an anonymous client to an externally obtained token, or
// replaces the token of a client already using one.
func (c *Client) SetAuthToken(token Token) error {
	return c.auth.transition(TokenAuth, &token, nil)
}

// UseTokenSource switches an anonymous client to service account mode, fetching the
// first token immediately. The client remains anonymous if the fetch fails.
func (c *Client) UseTokenSource(ctx context.Context, source oauth2.TokenSource) error {
	if source == nil {
		return fmt.Errorf("invalid token source")
	}

	if mode := c.auth.Mode(); mode != Anonymous {
		return fmt.Errorf("%v -> %v (%w)", mode, ServiceAccount, ErrAuthTransition)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	token, err := fetch(source)
	if err != nil {
		return fmt.Errorf("error fetching service account token (%w)", err)
	}

	return c.auth.transition(ServiceAccount, token, source)
}

// UseServiceAccount authenticates with a service account key.
func (c *Client) UseServiceAccount(ctx context.Context, credentials ServiceAccountCredentials) error {
	if strings.TrimSpace(credentials.ClientEmail) == "" {
		return fmt.Errorf("service account client email is required")
	}

	if strings.TrimSpace(credentials.PrivateKey) == "" {
		return fmt.Errorf("service account private key is required")
	}

	config := jwt.Config{
		Email:      credentials.ClientEmail,
		PrivateKey: []byte(credentials.PrivateKey),
		Scopes:     []string{FeedsScope},
		TokenURL:   google.JWTTokenURL,
	}

	return c.UseTokenSource(ctx, config.TokenSource(ctx))
}

// UseServiceAccountFile authenticates with a service account JSON key file.
func (c *Client) UseServiceAccountFile(ctx context.Context, file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	config, err := google.JWTConfigFromJSON(b, FeedsScope)
	if err != nil {
		return fmt.Errorf("invalid service account credentials (%w)", err)
	}

	return c.UseTokenSource(ctx, config.TokenSource(ctx))
}

// AuthMode returns the current authentication mode.
func (c *Client) AuthMode() AuthMode {
	return c.auth.Mode()
}

// TokenSource exposes the client credential as an oauth2.TokenSource for use with
// other Google APIs.
func (c *Client) TokenSource() oauth2.TokenSource {
	return tokenSource{c.auth}
}

type tokenSource struct {
	auth *auth
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	t, err := s.auth.current()
	if err != nil {
		return nil, err
	} else if t == nil {
		return nil, ErrAnonymous
	}

	return &oauth2.Token{
		AccessToken: t.Value,
		TokenType:   t.Type,
		Expiry:      t.Expires,
	}, nil
}
