package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ilhamrafi44/ayp/internal/employees"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/parser"
	"github.com/ilhamrafi44/ayp/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List employees",
	Long: `List employees in an interactive table.

Select a row and press e to edit it. Inactive employees cannot be edited.
With --no-ui the list is printed once as a table, JSON or YAML.`,
	Args: cobra.NoArgs,
	RunE: withApp(runList),
}

func runList(ctx context.Context, e *env, cmd *cobra.Command, _ []string) error {
	noUI, _ := cmd.Flags().GetBool("no-ui")
	if !noUI {
		res, err := tui.Run(ctx, e.client, e.store, e.log, e.uiOptions())
		if err != nil {
			return err
		}
		return res.Err
	}

	raw, _ := cmd.Flags().GetString("output")
	format, err := parser.OutputFormat(raw)
	if err != nil {
		return err
	}

	if _, err := e.requireSession(ctx); err != nil {
		return err
	}

	coll := employees.New(e.client, e.store, e.log)
	if err := coll.Fetch(ctx); err != nil {
		return err
	}

	return printEmployees(os.Stdout, coll.Employees(), format)
}

// printEmployees writes list to w as a table, JSON or YAML
func printEmployees(w io.Writer, list []models.Employee, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if list == nil {
			list = []models.Employee{}
		}
		return enc.Encode(list)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(list)
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No employees found.")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-30s %-36s %-9s %s\n", "ID", "NAME", "EMAIL", "STATUS", "ACTIONS")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for _, emp := range list {
		action := "edit"
		if !employees.Editable(emp) {
			action = "— disabled —"
		}
		fmt.Fprintf(w, "%-6d %-30s %-36s %-9s %s\n",
			emp.ID,
			clip(emp.Name, 30),
			clip(emp.Email, 36),
			emp.StatusLabel(),
			action)
	}
	return nil
}

// clip truncates s to width runes
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func init() {
	listCmd.Flags().Bool("no-ui", false, "Print the list instead of starting the TUI")
	listCmd.Flags().StringP("output", "o", "table", "Output format with --no-ui: table, json or yaml")
}
