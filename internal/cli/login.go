package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/evcraddock/studiodesk/internal/client"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and store an access token",
		Long:  "Prompts for your email and password, exchanges them for an access token and stores it in the config file. Use --server to log in to a different server; it is saved too.",
		Args:  cobra.NoArgs,
		RunE:  runLogin,
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Email: ")
	email, err := readLine(reader)
	if err != nil {
		return fmt.Errorf("reading email: %w", err)
	}

	fmt.Fprint(out, "Password: ")
	password, err := readPassword(in, reader)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if err := validateCredentials(email, password); err != nil {
		return err
	}

	serverURL := getServerURL()
	tok, err := client.New(serverURL, "").Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}

	cfg.AccessToken = tok.AccessToken
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "✓ Access token saved. You're logged in!")
	return nil
}

// readPassword reads without echo when in is a terminal, and a plain line
// otherwise.
func readPassword(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// validateCredentials checks the prompt answers before any request is made.
func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("no email provided")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %s", email)
	}
	if password == "" {
		return fmt.Errorf("no password provided")
	}
	return nil
}
