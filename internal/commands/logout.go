package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  withApp(runLogout),
}

func runLogout(ctx context.Context, e *env, _ *cobra.Command, _ []string) error {
	sess, err := e.auth.Current(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Println("Not signed in.")
		return nil
	}

	if err := e.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Printf("👋 Signed out %s\n", sess.User.Email)
	return nil
}
