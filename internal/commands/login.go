package commands

import (
	"context"
	"fmt"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/ilhamrafi44/ayp/internal/auth"
	"github.com/ilhamrafi44/ayp/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the employee service",
	Long: `Sign in with your e-mail and password.

The token and user are stored in ~/.ayp/ayp.db and sent with every
following request until you run 'ayp logout' or the service rejects them.

Usage:
  ayp login                          - Interactive sign-in form
  ayp login --no-ui -e me@corp.com   - Prompt for the password on the terminal`,
	Args: cobra.NoArgs,
	RunE: withApp(runLogin),
}

func runLogin(ctx context.Context, e *env, cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = e.cfg.LoginEmail
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	if !noUI {
		opts := e.uiOptions()
		opts.DefaultEmail = email
		opts.LoginOnly = true
		res, err := tui.Run(ctx, e.client, e.store, e.log, opts)
		if err != nil {
			return err
		}
		if res.Session == nil {
			fmt.Println("❌ Sign in cancelled.")
			return nil
		}
		fmt.Printf("✅ Signed in as %s <%s>\n", res.Session.User.Name, res.Session.User.Email)
		return nil
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		var err error
		if password, err = promptPassword(email); err != nil {
			return err
		}
	}

	sess, err := e.auth.Login(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Printf("✅ Signed in as %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

// promptPassword reads a password from the terminal without echo
func promptPassword(email string) (string, error) {
	rl, err := readline.New("")
	if err != nil {
		return "", fmt.Errorf("failed to open terminal: %w", err)
	}
	defer rl.Close()

	pw, err := rl.ReadPassword(fmt.Sprintf("Password for %s: ", email))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "E-mail to sign in with (env AYP_LOGIN_EMAIL)")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted for when omitted)")
	loginCmd.Flags().Bool("no-ui", false, "Skip interactive TUI")
}
