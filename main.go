package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordtia/internal/config"
	"github.com/robalobadob/wordtia/internal/store"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wordtia",
	Short: "WordTia - Wordle with Celestia underneath",
	Long: `WordTia is a terminal word-guessing game.

Guess the secret 5-letter word in 6 attempts. When the game ends, the hash of
the secret, the hashes of your guesses and the outcome are published as a blob
on Celestia.

Run without arguments to play a game.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		setupLogging(cfg.LogLevel)
		return nil
	},
	RunE: runPlay,
}

func init() {
	addPlayFlags(rootCmd)
	rootCmd.AddCommand(playCmd, historyCmd, serveCmd)
}

// main leaves SIGINT/SIGTERM at their default so Ctrl-C quits a game blocked
// on input. Only the submission step traps them (see session.submit).
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends human-readable logs to stderr so they never interleave
// with the board on stdout.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// openStore returns the configured history store.
func openStore(c config.Config) (store.Store, error) {
	if c.MemoryOnly() {
		return store.NewMemoryStore(), nil
	}
	st, err := store.OpenSQLite(c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", c.DBPath, err)
	}
	return st, nil
}
