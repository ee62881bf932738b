package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gopkg.in/ini.v1"

	"github.com/uhppoted/gsheets-feed/spreadsheet"
)

const APP = "gsheets-feed"

// Commands is the command list for main().
var Commands = []*cli.Command{
	&VersionCmd,
	&AuthoriseCmd,
	&GetInfoCmd,
	&GetRowsCmd,
	&AddRowCmd,
	&UpdateRowCmd,
	&GetCellsCmd,
	&SetCellCmd,
	&DeleteRowCmd,
	&RevisionCmd,
	&AddWorksheetCmd,
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
var spreadsheetKey = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type command struct {
	url         string
	worksheet   string
	credentials string
	tokens      string
	visibility  string
	projection  string
	debug       bool
}

// flags returns the options shared by all the spreadsheet commands.
func flags(extra ...cli.Flag) []cli.Flag {
	list := []cli.Flag{
		&cli.StringFlag{Name: "url", Usage: "Spreadsheet URL or key"},
		&cli.StringFlag{Name: "credentials", Usage: "Google credentials file (service account key or OAuth2 client)"},
		&cli.StringFlag{Name: "tokens", Usage: "OAuth2 tokens file created by 'authorise'"},
		&cli.StringFlag{Name: "visibility", Usage: "Feed visibility ('public' or 'private')"},
		&cli.StringFlag{Name: "projection", Usage: "Feed projection ('values' or 'full')"},
	}

	return append(list, extra...)
}

// load merges the [sheets] section of the configuration file with the command line. Command
// line options take precedence.
func load(c *cli.Context) (*command, error) {
	cmd := command{
		debug: c.Bool("debug"),
	}

	file := c.String("config")
	if file == "" {
		file = DEFAULT_CONFIG
	}

	conf, err := ini.LooseLoad(file)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration file %v (%v)", file, err)
	}

	section := conf.Section("sheets")
	settings := []struct {
		key   string
		value *string
	}{
		{"url", &cmd.url},
		{"worksheet", &cmd.worksheet},
		{"credentials", &cmd.credentials},
		{"tokens", &cmd.tokens},
		{"visibility", &cmd.visibility},
		{"projection", &cmd.projection},
	}

	for _, s := range settings {
		*s.value = strings.TrimSpace(section.Key(s.key).String())
		if c.IsSet(s.key) {
			*s.value = strings.TrimSpace(c.String(s.key))
		}
	}

	if cmd.debug {
		debugf("configuration - file:%v  url:%v  worksheet:%v", file, cmd.url, cmd.worksheet)
	}

	return &cmd, nil
}

// key extracts the spreadsheet key from either a spreadsheet URL or a bare key.
func (cmd *command) key() (string, error) {
	if strings.TrimSpace(cmd.url) == "" {
		return "", fmt.Errorf("--url is a required option")
	}

	if match := spreadsheetURL.FindStringSubmatch(cmd.url); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if spreadsheetKey.MatchString(cmd.url) {
		return cmd.url, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

func (cmd *command) sheet() (string, error) {
	if cmd.worksheet == "" {
		return "", fmt.Errorf("--worksheet is a required option")
	}

	return cmd.worksheet, nil
}

// connect creates a spreadsheet client and authenticates it with whichever credentials
// are configured. Without credentials the client is anonymous.
func (cmd *command) connect(ctx context.Context) (*spreadsheet.Client, error) {
	key, err := cmd.key()
	if err != nil {
		return nil, err
	}

	options := []spreadsheet.Option{}

	switch cmd.visibility {
	case "":
	case string(spreadsheet.Public), string(spreadsheet.Private):
		options = append(options, spreadsheet.WithVisibility(spreadsheet.Visibility(cmd.visibility)))
	default:
		return nil, fmt.Errorf("invalid visibility '%v'", cmd.visibility)
	}

	switch cmd.projection {
	case "":
	case string(spreadsheet.Values), string(spreadsheet.Full):
		options = append(options, spreadsheet.WithProjection(spreadsheet.Projection(cmd.projection)))
	default:
		return nil, fmt.Errorf("invalid projection '%v'", cmd.projection)
	}

	client, err := spreadsheet.New(key, options...)
	if err != nil {
		return nil, err
	}

	if err := cmd.authenticate(ctx, client); err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%v)", err)
	}

	if cmd.debug {
		debugf("spreadsheet - key:%v  auth:%v", client.Key(), client.AuthMode())
	}

	return client, nil
}

func (cmd *command) authenticate(ctx context.Context, client *spreadsheet.Client) error {
	switch {
	case cmd.credentials != "":
		kind, err := credentialsType(cmd.credentials)
		if err != nil {
			return err
		}

		if kind == "service_account" {
			return client.UseServiceAccountFile(ctx, cmd.credentials)
		}

		if cmd.tokens == "" {
			return fmt.Errorf("--tokens is required with OAuth2 client credentials (run 'authorise' to create it)")
		}

		config, err := oauthConfig(cmd.credentials)
		if err != nil {
			return err
		}

		token, err := tokenFromFile(cmd.tokens)
		if err != nil {
			return err
		}

		return client.UseTokenSource(ctx, config.TokenSource(ctx, token))

	case cmd.tokens != "":
		token, err := tokenFromFile(cmd.tokens)
		if err != nil {
			return err
		}

		if !token.Valid() {
			warnf("access token in %v has expired", cmd.tokens)
		}

		return client.SetAuthToken(spreadsheet.Token{
			Type:    token.Type(),
			Value:   token.AccessToken,
			Expires: token.Expiry,
		})
	}

	return nil
}

// credentialsType returns the 'type' field of a Google credentials file. OAuth2 client
// credentials don't have one.
func credentialsType(file string) (string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	credentials := struct {
		Type string `json:"type"`
	}{}

	if err := json.Unmarshal(b, &credentials); err != nil {
		return "", fmt.Errorf("invalid credentials file %v (%v)", file, err)
	}

	return credentials.Type, nil
}

func oauthConfig(file string) (*oauth2.Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(b, spreadsheet.FeedsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid OAuth2 client credentials (%v)", err)
	}

	return config, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("invalid tokens file %v (%v)", file, err)
	}

	return &token, nil
}

func saveToken(file string, token *oauth2.Token) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save OAuth2 token (%v)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
