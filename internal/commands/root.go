package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ilhamrafi44/ayp/internal/api"
	"github.com/ilhamrafi44/ayp/internal/auth"
	"github.com/ilhamrafi44/ayp/internal/config"
	"github.com/ilhamrafi44/ayp/internal/db"
	"github.com/ilhamrafi44/ayp/internal/logger"
	"github.com/ilhamrafi44/ayp/internal/session"
	"github.com/ilhamrafi44/ayp/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	errNotSignedIn    = errors.New("not signed in, run `ayp login` first")
	errSessionExpired = errors.New("session expired, run `ayp login`")
)

var rootCmd = &cobra.Command{
	Use:   "ayp",
	Short: "Manage employees from the terminal",
	Long: `ayp is a terminal client for the employee service.
Sign in, browse the employee list and edit names, e-mails and status
without leaving the shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// env is what every command runs against
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  session.Store
	client *api.Client
	auth   *auth.Service
}

// withApp wraps a command function to load config, logging and the
// session store first
func withApp(fn func(context.Context, *env, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		e, cleanup, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := explain(fn(ctx, e, cmd, args)); err != nil {
			log := logger.Get()
			log.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
			return err
		}
		return nil
	}
}

// setup builds the env for cmd. The returned cleanup closes the database
// and the log file
func setup(ctx context.Context, cmd *cobra.Command) (*env, func(), error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if f := cmd.Flags().Lookup("api-url"); f != nil && f.Changed {
		cfg.APIURL = strings.TrimRight(f.Value.String(), "/")
	}

	var log zerolog.Logger
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose && !interactive(cmd) {
		log = logger.Init(logger.Options{Level: "debug", Pretty: true, Output: os.Stderr})
	} else if log, err = logger.InitFile(cfg.LogPath(), cfg.LogLevel); err != nil {
		return nil, nil, err
	}

	closers := []func(){func() { _ = logger.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var store session.Store
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		store = session.NewMemoryStore()
	} else {
		gdb, err := db.Open(db.Path(cfg.Home))
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = db.Close(gdb) })
		store = db.NewSessionStore(gdb)
	}

	log.Debug().Str("api_url", cfg.APIURL).Str("command", cmd.Name()).Msg("starting")

	client := api.New(cfg.APIURL, cfg.HTTPTimeout, store, log)
	return &env{
		cfg:    cfg,
		log:    log,
		store:  store,
		client: client,
		auth:   auth.NewService(client, store, log),
	}, cleanup, nil
}

// interactive reports whether cmd is about to start the TUI
func interactive(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("no-ui")
	if f == nil {
		return false
	}
	noUI, _ := cmd.Flags().GetBool("no-ui")
	return !noUI
}

// explain maps domain errors to what the user should do about them
func explain(err error) error {
	if errors.Is(err, session.ErrSessionExpired) {
		return errSessionExpired
	}
	return err
}

// uiOptions seeds the console with the configured defaults
func (e *env) uiOptions() tui.Options {
	return tui.Options{
		DefaultEmail: e.cfg.LoginEmail,
		ReduceMotion: e.cfg.ReduceMotion,
	}
}

// requireSession returns the stored session or errNotSignedIn
func (e *env) requireSession(ctx context.Context) (*session.Session, error) {
	sess, err := e.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errNotSignedIn
	}
	return sess, nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// ExecuteContext runs the root command with ctx
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", fmt.Sprintf("Employee service base URL (env AYP_API_URL, default %s)", config.DefaultAPIURL))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr (non-interactive commands only)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep the session in memory only")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
