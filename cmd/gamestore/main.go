// Command gamestore is a terminal frontend for the game store API.
package main

import (
	"net/http"
	"os"
	"time"

	"game-store/internal/client"
	"game-store/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the client shared by every subcommand.
type app struct {
	apiURL  string
	timeout time.Duration
	client  *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	defaultURL := "http://localhost:8080"
	if cfg, err := config.LoadClient(); err == nil {
		defaultURL = cfg.APIURL
	}

	root := &cobra.Command{
		Use:           "gamestore",
		Short:         "Browse and manage the game store catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.client = client.New(a.apiURL, client.WithHTTPClient(&http.Client{Timeout: a.timeout}))
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", defaultURL, "base URL of the game store API (env GAMESTORE_API_URL)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "per-request timeout")

	root.AddCommand(newGamesCmd(a), newGenresCmd(a))
	return root
}
