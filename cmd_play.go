package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordtia/internal/attest"
	"github.com/robalobadob/wordtia/internal/celestia"
	"github.com/robalobadob/wordtia/internal/config"
	"github.com/robalobadob/wordtia/internal/console"
	"github.com/robalobadob/wordtia/internal/game"
	"github.com/robalobadob/wordtia/internal/store"
	"github.com/robalobadob/wordtia/internal/words"
)

var (
	playDaily    bool
	playNoSubmit bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game and attest the result",
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&playDaily, "daily", false, "play the word of the day")
	cmd.Flags().BoolVar(&playNoSubmit, "no-submit", false, "skip publishing the result to Celestia")
}

func runPlay(cmd *cobra.Command, args []string) error {
	src, err := wordSource(cfg, playDaily)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var sub *attest.Submitter
	if cfg.SubmitEnabled && !playNoSubmit {
		sub = &attest.Submitter{
			Sink:      celestia.New(cfg.RPCURL, cfg.AuthToken, celestia.WithTimeout(cfg.SubmitTimeout)),
			Namespace: cfg.Namespace,
			TxConfig:  cfg.Tx,
		}
	}

	con := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), isTerminal(cmd.OutOrStdout()))
	return session{
		cfg:    cfg,
		con:    con,
		src:    src,
		sub:    sub,
		store:  st,
		now:    time.Now,
		newID:  uuid.NewString,
		daily:  playDaily,
		rounds: game.MaxAttempts,
	}.run(cmd.Context())
}

// isTerminal reports whether w is a file descriptor attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(f.Fd())
}

// wordSource picks the daily or random source over the configured list.
func wordSource(c config.Config, daily bool) (words.Source, error) {
	list, err := words.Default()
	if c.WordsFile != "" {
		list, err = words.Load(c.WordsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}
	if daily {
		return words.NewDaily(list, c.DailySalt, nil)
	}
	return words.NewRandom(list)
}

// session is one play-attest-record cycle.
type session struct {
	cfg    config.Config
	con    game.Console
	src    words.Source
	sub    *attest.Submitter // nil disables attestation
	store  store.Store
	now    func() time.Time
	newID  func() string
	daily  bool
	rounds int
}

func (s session) run(ctx context.Context) error {
	s.con.Announce("🔐 Welcome to WordTia! (Wordle with Celestia underneath ✨)")
	mode := ""
	if s.daily {
		mode = " (daily word)"
	}
	s.con.WriteLine(fmt.Sprintf("Guess the secret %d-letter word%s. You have %d attempts.", game.WordLength, mode, s.rounds))
	s.con.WriteLine("")

	out, err := game.Play(s.src, s.con, game.Config{MaxAttempts: s.rounds, Now: s.now})
	if errors.Is(err, game.ErrInputClosed) {
		log.Warn().Msg("input closed before the game ended; nothing submitted")
		return nil
	}
	if err != nil {
		return err
	}

	finished, err := time.Parse(time.RFC3339, out.Result.Timestamp)
	if err != nil {
		finished = s.now().UTC()
	}
	rec := store.Record{
		ID:          s.newID(),
		WordHash:    out.Result.WordHash,
		GuessHashes: out.Result.GuessHashes,
		Success:     out.Result.Success,
		FinishedAt:  finished,
	}

	if s.sub != nil {
		rec.Network = s.cfg.Network
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Str("id", rec.ID).Msg("cancelled before submission; result kept unattested")
		} else {
			s.submit(ctx, out.Result, &rec)
		}
	}

	if err := s.store.Save(ctx, rec); err != nil {
		log.Warn().Err(err).Str("id", rec.ID).Msg("save history")
	}
	return nil
}

// submit publishes r and fills the receipt or failure into rec.
// Interrupts are trapped only here, so Ctrl-C aborts the network call
// instead of the process.
func (s session) submit(ctx context.Context, r game.Result, rec *store.Record) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rc, err := s.sub.Submit(ctx, r)
	if err != nil {
		log.Error().Err(err).Str("rpc", s.cfg.RPCURL).Msg("submission failed")
		s.con.WriteLine(fmt.Sprintf("❌ Submission failed: %v", err))
		rec.SubmitError = err.Error()
		return
	}
	rec.Height, rec.TxHash = rc.Height, rc.TxHash
	s.con.Announce("✅ Game submitted to Celestia!")
	s.con.WriteLine(fmt.Sprintf("🔗 Included in block: %d", rc.Height))
	s.con.WriteLine(fmt.Sprintf("🌐 View on Celenium: %s", attest.ExplorerLink(s.cfg.ExplorerURL, rc.TxHash)))
}
