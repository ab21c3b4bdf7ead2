package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilhamrafi44/ayp/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the user stored with the current session.

Nothing is sent to the service; a token the service has revoked still
shows here until the next request fails.`,
	Args: cobra.NoArgs,
	RunE: withApp(runWhoami),
}

func runWhoami(ctx context.Context, e *env, _ *cobra.Command, _ []string) error {
	sess, err := e.requireSession(ctx)
	if err != nil {
		return err
	}

	writeWhoami(os.Stdout, sess, e.cfg.APIURL, time.Now())
	return nil
}

func writeWhoami(w io.Writer, sess *session.Session, apiURL string, now time.Time) {
	fmt.Fprintf(w, "%s <%s>\n", sess.User.Name, sess.User.Email)
	fmt.Fprintf(w, "User ID: %d\n", sess.User.ID)
	fmt.Fprintf(w, "Service: %s\n", apiURL)

	info, ok := session.Inspect(sess.Token)
	if !ok {
		return
	}
	if !info.IssuedAt.IsZero() {
		fmt.Fprintf(w, "Issued:  %s\n", info.IssuedAt.Local().Format("02/01/2006 15:04"))
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(w, "Token:   %s (%s)\n", info.ExpiryLabel(now), info.ExpiresAt.Local().Format("02/01/2006 15:04"))
	}
}
