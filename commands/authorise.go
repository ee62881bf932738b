package commands

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
)

var AuthoriseCmd = cli.Command{
	Name:        "authorise",
	Aliases:     []string{"authorize"},
	Usage:       "Authorises access to the spreadsheet feeds with a Google account",
	Description: "Runs the OAuth2 installed application flow and saves the resulting tokens for use with --tokens",
	ArgsUsage:   " ",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "credentials", Value: DEFAULT_CREDENTIALS, Usage: "OAuth2 client credentials file"},
		&cli.StringFlag{Name: "tokens", Value: filepath.Join(DEFAULT_WORKDIR, ".google", "sheets.tokens"), Usage: "File for the OAuth2 tokens"},
	},
	Action: authorise,
}

const state = "state-token"

func authorise(c *cli.Context) error {
	debug := c.Bool("debug")
	credentials := c.String("credentials")
	tokens := c.String("tokens")

	config, err := oauthConfig(credentials)
	if err != nil {
		return err
	}

	// ... start HTTP server on localhost
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}

	config.RedirectURL = fmt.Sprintf("http://%v/", listener.Addr())
	if debug {
		debugf("OAuth2 redirect URL %v", config.RedirectURL)
	}

	authorised := make(chan string, 1)
	srv := &http.Server{
		Handler: callback(authorised, c.App.Writer),
	}

	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer srv.Shutdown(context.Background())

	// ... CTRL-C handler
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt)
	defer cancel()

	fmt.Fprintf(c.App.Writer, "Open the following link in your browser to authorise access to the spreadsheet feeds:\n\n  %v\n\n", config.AuthCodeURL(state, oauth2.AccessTypeOffline))

	select {
	case <-ctx.Done():
		fmt.Fprintf(c.App.Writer, "\n.. cancelled\n\n")
		return nil

	case code := <-authorised:
		token, err := config.Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("unable to retrieve token (%v)", err)
		}

		if err := os.MkdirAll(filepath.Dir(tokens), 0770); err != nil {
			return err
		}

		if err := saveToken(tokens, token); err != nil {
			return err
		}

		infof("saved OAuth2 tokens to %v", tokens)
	}

	return nil
}

// callback handles the OAuth2 redirect, passing the authorisation code to the channel.
func callback(authorised chan<- string, out io.Writer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		code := rq.FormValue("code")

		switch {
		case rq.FormValue("state") != state:
			http.Error(w, "invalid state", http.StatusBadRequest)

		case rq.FormValue("error") != "":
			http.Error(w, rq.FormValue("error"), http.StatusForbidden)
			fmt.Fprintf(out, "Authorisation refused (%v)\n", rq.FormValue("error"))

		case code == "":
			http.Error(w, "missing authorisation code", http.StatusBadRequest)

		default:
			select {
			case authorised <- code:
			default:
			}

			fmt.Fprintln(w, "Authorised - you can close this window")
		}
	})
}
