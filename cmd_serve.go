package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordtia/internal/httpserver"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game history over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		addr := serveAddr
		if addr == "" {
			addr = ":" + cfg.Port
		}
		srv := httpserver.New(st, cfg.ExplorerURL)
		log.Info().Str("addr", addr).Msg("starting history server")
		return srv.Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :$PORT)")
}
