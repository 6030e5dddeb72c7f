// Package cli defines the cobra command tree for studiodesk.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evcraddock/studiodesk/internal/client"
	"github.com/evcraddock/studiodesk/internal/logging"
	"github.com/evcraddock/studiodesk/internal/thread"
)

var (
	flagFormat   string
	flagServer   string
	flagDev      bool
	flagLogLevel string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sd",
		Short:         "Follow and post project comments",
		Long:          "A client for the studio API. Read a project's comment thread, post page, photo and change-request comments, and browse projects via CLI or a local web view.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: from env, config or "+defaultServerURL+")")
	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "human-readable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(
		newCommentsCmd(),
		newCommentCmd(),
		newUncommentCmd(),
		newShowCmd(),
		newServeCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// setupLogging installs the default logger from --dev, --log-level and
// SD_LOG_LEVEL. Without any of them only warnings reach stderr.
func setupLogging() {
	level := flagLogLevel
	if level == "" {
		level = loadEnv().LogLevel
	}
	switch {
	case level != "":
		logging.Setup(flagDev, logging.ParseLevel(level))
	case flagDev:
		logging.Setup(true, slog.LevelDebug)
	default:
		logging.Setup(false, slog.LevelWarn)
	}
}

// newAPIClient creates an HTTP client for the studio API.
func newAPIClient() *client.Client {
	return client.New(getServerURL(), getToken()).WithLogger(slog.Default())
}

// newController wraps c in a thread controller that displays times in the
// configured zone.
func newController(c *client.Client, opts ...thread.Option) (*thread.Controller, error) {
	loc, err := getLocation()
	if err != nil {
		return nil, err
	}
	opts = append([]thread.Option{thread.WithLogger(slog.Default()), thread.WithLocation(loc)}, opts...)
	return thread.New(c, opts...), nil
}

// viewerID returns the signed-in user's ID, or "" when there is no usable
// token. It only decides which entries are marked deletable.
func viewerID(ctx context.Context, c *client.Client) string {
	if getToken() == "" {
		return ""
	}
	me, err := c.CurrentUser(ctx)
	if err != nil {
		slog.Debug("resolving current user failed", "error", err)
		return ""
	}
	return me.ID
}

// parseID checks that arg is a UUID and returns it in canonical form.
func parseID(kind, arg string) (string, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("invalid %s ID: %s", kind, arg)
	}
	return id.String(), nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
