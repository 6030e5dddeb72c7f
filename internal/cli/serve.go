package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/studiodesk/internal/thread"
	"github.com/evcraddock/studiodesk/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web view",
		Long:  "Start an HTTP server that shows project pages and comment threads using the stored access token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, port int) error {
	c := newAPIClient()
	// Other clients change threads too, so every page load re-reads them.
	ctrl, err := newController(c, thread.WithMaxAge(0))
	if err != nil {
		return err
	}
	loc, err := getLocation()
	if err != nil {
		return err
	}

	srv, err := web.NewServer(c, ctrl, web.WithLogger(slog.Default()), web.WithLocation(loc))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(cmd.Context(), port)
}
