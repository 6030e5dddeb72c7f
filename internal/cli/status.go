package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/studiodesk/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and auth status",
		Long:  "Tests the connection to the server and checks if the stored access token is valid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runStatus(ctx context.Context, out io.Writer) error {
	serverURL := getServerURL()
	token := getToken()

	fmt.Fprintf(out, "Server:   %s\n", serverURL)
	if loc, err := getLocation(); err != nil {
		fmt.Fprintf(out, "Timezone: ✗ %v\n", err)
	} else {
		fmt.Fprintf(out, "Timezone: %s\n", loc)
	}

	if token == "" {
		fmt.Fprintln(out, "Token:    not configured")
		fmt.Fprintln(out, "\nRun 'sd login' to authenticate.")
		return nil
	}

	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	fmt.Fprintf(out, "Token:    %s…\n", prefix)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	me, err := client.New(serverURL, token).WithLogger(slog.Default()).CurrentUser(ctx)
	var apiErr *client.APIError
	switch {
	case err == nil:
		fmt.Fprintf(out, "Status:   ✓ connected as %s\n", me.DisplayName())
	case client.IsUnauthorized(err):
		fmt.Fprintln(out, "Status:   ✗ invalid or expired token")
		fmt.Fprintln(out, "\nRun 'sd login' to re-authenticate.")
	case errors.As(err, &apiErr):
		fmt.Fprintf(out, "Status:   ✗ unexpected response (%d)\n", apiErr.StatusCode)
	default:
		fmt.Fprintf(out, "Status:   ✗ cannot reach server (%v)\n", err)
	}

	return nil
}
