package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ilhamrafi44/ayp/internal/editor"
	"github.com/ilhamrafi44/ayp/internal/employees"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/parser"
	"github.com/ilhamrafi44/ayp/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <employee_id>",
	Short: "Edit an employee",
	Long: `Edit an employee's name, e-mail and status.

Opens the edit form pre-populated with the employee's current data.
Inactive employees cannot be edited.

Usage:
  ayp edit 7                           - Edit employee #7 interactively
  ayp edit 7 --no-ui --status inactive - Deactivate employee #7`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runEdit),
}

func runEdit(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
	id, err := parser.ParseEmployeeID(args[0])
	if err != nil {
		return err
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	if !noUI {
		opts := e.uiOptions()
		opts.EditID = id
		res, err := tui.Run(ctx, e.client, e.store, e.log, opts)
		if err != nil {
			return err
		}
		if res.Err != nil {
			return res.Err
		}
		if res.Saved == nil {
			fmt.Println("❌ Edit cancelled.")
			return nil
		}
		printSaved(*res.Saved)
		return nil
	}

	if _, err := e.requireSession(ctx); err != nil {
		return err
	}

	coll := employees.New(e.client, e.store, e.log)
	if err := coll.Fetch(ctx); err != nil {
		return err
	}

	emp, ok := coll.Find(id)
	if !ok {
		return fmt.Errorf("employee #%d not found", id)
	}
	if !employees.Editable(emp) {
		return fmt.Errorf("employee #%d: %w", id, employees.ErrNotEditable)
	}

	wf := editor.New(e.client, coll, e.store, e.log)
	wf.Open(emp)

	changed := false
	if f := cmd.Flags().Lookup("name"); f.Changed {
		wf.SetName(f.Value.String())
		changed = true
	}
	if f := cmd.Flags().Lookup("email"); f.Changed {
		wf.SetEmail(f.Value.String())
		changed = true
	}
	if f := cmd.Flags().Lookup("status"); f.Changed {
		active, err := parser.ParseStatus(f.Value.String())
		if err != nil {
			return err
		}
		wf.SetActive(active)
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change: use --name, --email or --status")
	}

	updated, err := wf.Submit(ctx)
	if err != nil {
		return err
	}

	printSaved(updated)
	return nil
}

func printSaved(emp models.Employee) {
	fmt.Println(savedLine(emp))
}

// savedLine uses the same status words --status accepts
func savedLine(emp models.Employee) string {
	return fmt.Sprintf("✅ Employee #%d updated: %s <%s> (%s)", emp.ID, emp.Name, emp.Email, parser.StatusWord(emp.IsActive))
}

func init() {
	editCmd.Flags().Bool("no-ui", false, "Edit via command line")
	editCmd.Flags().String("name", "", "New name")
	editCmd.Flags().String("email", "", "New e-mail")
	editCmd.Flags().String("status", "", "New status: active or inactive")
}
