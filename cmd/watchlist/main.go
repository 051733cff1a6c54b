// Command watchlist manages the signed-in user's watchlist through the HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"watchlist_backend/internal/feature/watchlist/client"
	"watchlist_backend/internal/feature/watchlist/presentation"
	infrahttp "watchlist_backend/internal/platform/http"
	"watchlist_backend/internal/platform/logger"
)

const defaultTimeout = 15 * time.Second

var commands = []subcommands.Command{
	&listCmd{},
	&toggleCmd{},
	&removeCmd{},
}

// session is the API access shared by all commands.
type session struct {
	api   *client.Client
	email string
}

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	apiURL = flag.String("api", "", "watchlist API base URL (default $WATCHLIST_API_URL or "+client.DefaultBaseURL+")")
	token  = flag.String("token", "", "access token (default $WATCHLIST_TOKEN)")
	style  = flag.String("style", "", "glamour style: dark, light, notty (default: detect)")
)

func newSession() (*session, error) {
	cfg := client.LoadConfig()
	if *apiURL != "" {
		cfg.BaseURL = *apiURL
	}
	if *token != "" {
		cfg.Token = *token
	}
	if cfg.Token == "" {
		return nil, errors.New("no access token: pass -token or set WATCHLIST_TOKEN")
	}
	email, err := client.EmailFromToken(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &session{api: client.New(cfg, infrahttp.NewHTTPClient(defaultTimeout)), email: email}, nil
}

func printMarkdown(md string) {
	r, err := presentation.NewTerminalRenderer(*style, 100)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

func main() {
	_ = godotenv.Load()

	logCfg := logger.LoadConfig()
	if logCfg.Level == "" {
		logCfg.Level = "warn"
	}
	closer, err := logger.Init(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	status := commander.Execute(context.Background())
	_ = closer.Close()
	os.Exit(int(status))
}
