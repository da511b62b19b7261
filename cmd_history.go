package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordtia/internal/attest"
	"github.com/robalobadob/wordtia/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently finished games and their attestations",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := st.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), recs, stats, cfg.ExplorerURL)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of games to show")
}

func printHistory(w io.Writer, recs []store.Record, stats store.Stats, explorer string) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No games played yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tRESULT\tGUESSES\tBLOCK\tLINK")
	for _, r := range recs {
		result := "lost"
		if r.Success {
			result = "won"
		}
		block, link := "-", "-"
		switch {
		case r.Attested():
			block = fmt.Sprint(r.Height)
			link = attest.ExplorerLink(explorer, r.TxHash)
		case r.SubmitError != "":
			block = "failed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			r.FinishedAt.Local().Format(time.DateTime), result, len(r.GuessHashes), block, link)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d games, %d won, %d attested\n", stats.Games, stats.Wins, stats.Attested)
}
