package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetask-go/internal/bridge"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the WebSocket bridge for the browser extension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openSource(false); err != nil {
				return err
			}
			if _, err := a.openKeys(); err != nil {
				return err
			}
			opts, err := a.options(cmd.Context(), false)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Bridge.Addr
			}

			srv := bridge.NewServer(a.source, a.dispatcher(), opts, a.logger)
			srv.SpreadsheetID = a.spreadsheetID

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8765)")
	return cmd
}
