// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/dirtags/dirtags/internal/issue"

	"github.com/spf13/cobra"
)

// newExplainCommand creates `dirtags explain [issue]`, which prints the
// guidance dirtags shows after a failure without having to reproduce it.
func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [issue]",
		Short: "Explain a known problem and how to fix it",
		Long: `Explain a known problem and how to fix it.

Without an argument, lists every known problem by name. With a name, prints
the full guidance for it.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, is := range issue.Values() {
				names = append(names, is.Id().String()+"\t"+is.Title())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listIssues(app)
				return nil
			}
			return explainIssue(app, args[0])
		},
	}
}

func listIssues(app *App) {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Known problems"))
	fmt.Fprintln(app.stdout)
	for _, is := range issue.Values() {
		fmt.Fprintf(app.stdout, "  %s  %s\n", KeyStyle.Render(fmt.Sprintf("%-22s", is.Id().String())), is.Title())
	}
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Run 'dirtags explain <name>' for details."))
}

// explainIssue renders one catalog entry. An unknown name is a usage error.
func explainIssue(app *App, name string) error {
	is := issue.Lookup(name)
	if is == nil {
		return fmt.Errorf("unknown problem %q (run 'dirtags explain' for the list)", name)
	}
	rendered, err := is.Render(autoStyle)
	if err != nil {
		return app.fail(newServiceError(issue.WrapWithContext(err, "render guidance", name), 0), false, autoStyle)
	}
	fmt.Fprint(app.stdout, rendered)
	return nil
}
