package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for ayp",
	Long:  `Display detailed help for all ayp commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if sub, _, err := rootCmd.Find(args); err == nil && sub != rootCmd {
				_ = sub.Help()
				return
			}
		}
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
 █████╗ ██╗   ██╗██████╗
██╔══██╗╚██╗ ██╔╝██╔══██╗
███████║ ╚████╔╝ ██████╔╝
██╔══██║  ╚██╔╝  ██╔═══╝
██║  ██║   ██║   ██║
╚═╝  ╚═╝   ╚═╝   ╚═╝

ayp - employee console for the terminal

COMMANDS:

  login                   Sign in to the employee service
    -e, --email           E-mail (default from AYP_LOGIN_EMAIL)
    -p, --password        Password (prompted for when omitted)
    --no-ui               Prompt on the terminal instead of the form

  ls                      Browse employees in an interactive table
    --no-ui               Print the list once
    -o, --output          table|json|yaml (with --no-ui)

    Quick actions:
      ↑/↓           Navigate employees
      ←/→           Previous/next page
      e, enter      Edit selected employee (active only)
      r             Retry after a failed load
      L             Sign out
      esc/q         Quit

  edit <id>               Edit one employee
    --no-ui               Edit via command line
    --name                New name
    --email               New e-mail
    --status              active|inactive

    In the edit form:
      tab           Next field
      space         Toggle status
      ctrl+s        Save
      esc           Cancel

  whoami                  Show the signed-in user and token expiry
  logout                  Forget the stored session
  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:

  --api-url               Service base URL (env AYP_API_URL)
  -v, --verbose           Log to stderr for --no-ui commands
  --ephemeral             Keep the session in memory only

ENVIRONMENT:

  AYP_API_URL             default http://localhost:8000/api
  AYP_HOME                default ~/.ayp (session database, ayp.log)
  AYP_LOG_LEVEL           trace|debug|info|warn|error, default info
  AYP_HTTP_TIMEOUT        default 30s
  AYP_LOGIN_EMAIL         login form prefill
  AYP_REDUCE_MOTION       true disables the cursor blink and loading shimmer

`)
}
