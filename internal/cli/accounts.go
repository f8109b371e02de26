package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"taskdeck/internal/accounts"
	"taskdeck/internal/auth"
	"taskdeck/internal/github"
	"taskdeck/internal/paths"
)

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Show and connect the accounts taskdeck reads from",
	}
	cmd.AddCommand(newAccountsListCmd())
	cmd.AddCommand(newAccountsConnectCmd())
	return cmd
}

func newAccountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts and their connection state",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenPath, err := paths.TokenPath()
			if err != nil {
				return err
			}
			checker := accounts.Checker{TokenPath: tokenPath, GitHub: github.New(github.OSExecutor{}, 1)}
			for _, acc := range checker.Status(cmd.Context()) {
				fmt.Println(accountLine(acc))
			}
			return nil
		},
	}
}

func accountLine(acc accounts.Account) string {
	state := "not connected"
	if acc.Connected {
		state = "connected"
		if acc.DisplayID != "" {
			state += " as " + acc.DisplayID
		}
	}
	return fmt.Sprintf("- %s: %s %s", acc.Name, state, gray("("+acc.Link+")"))
}

func newAccountsConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "connect <google|github>",
		Short:     "Connect an account",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(accounts.Google), string(accounts.GitHub)},
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := accounts.ParseProvider(args[0])
			if err != nil {
				return err
			}
			switch provider {
			case accounts.Google:
				return connectGoogle(cmd)
			case accounts.GitHub:
				return connectGitHub(cmd.Context())
			default:
				return fmt.Errorf("unsupported provider: %s", provider)
			}
		},
	}
}

func connectGoogle(cmd *cobra.Command) error {
	credPath, _ := cmd.Flags().GetString("credentials")
	if credPath == "" {
		var err error
		credPath, err = paths.CredentialsPath()
		if err != nil {
			return err
		}
	}
	tokenPath, err := paths.TokenPath()
	if err != nil {
		return err
	}
	if err := auth.Connect(cmd.Context(), credPath, tokenPath, os.Stdout); err != nil {
		return err
	}
	fmt.Println("✅ Google connected")
	return nil
}

// connectGitHub delegates to gh's own browser login.
func connectGitHub(ctx context.Context) error {
	if _, err := exec.LookPath("gh"); err != nil {
		return github.ErrNotInstalled
	}
	c := exec.CommandContext(ctx, "gh", "auth", "login", "--web")
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("gh auth login exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("gh auth login: %w", err)
	}
	fmt.Println("✅ GitHub connected")
	return nil
}
