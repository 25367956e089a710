package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/locale"
	"github.com/naka-gawa/github-dashboard/internal/render"
)

func newShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show [term]",
		Short: "Searches for a repository and prints its dashboard",
		Long: `Searches GitHub for the best-starred repository matching term and prints
its dashboard. Without a term the default repository is shown.

With --interactive, one search term is read per line from standard input and the
dashboard is printed again after each search. An empty line shows the default
repository.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
	showCmd.Flags().Bool("json", false, "Print the dashboard state as JSON")
	showCmd.Flags().Bool("no-color", false, "Disable colored output")
	showCmd.Flags().BoolP("interactive", "i", false, "Read search terms from standard input")
	return showCmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dashboard, cfg, _, err := newDashboard(cmd)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	interactive, _ := cmd.Flags().GetBool("interactive")

	text := render.NewText(locale.For(cfg.Locale), noColor)
	out := cmd.OutOrStdout()
	show := func(state domain.DashboardState) error {
		if asJSON {
			return render.JSON(out, state)
		}
		return text.Render(out, state)
	}

	if interactive {
		if err := show(dashboard.Start(ctx)); err != nil {
			return err
		}
		return readTerms(cmd.InOrStdin(), func(term string) error {
			if !asJSON {
				fmt.Fprintln(out)
			}
			return show(dashboard.Search(ctx, term))
		})
	}

	var term string
	if len(args) == 1 {
		term = args[0]
	}
	state := dashboard.Search(ctx, term)
	if err := show(state); err != nil {
		return err
	}
	if state.Status != domain.StatusLoaded {
		return fmt.Errorf("search for %q finished with status %s", term, state.Status)
	}
	return nil
}

// readTerms calls search for every line of r until r is exhausted.
func readTerms(r io.Reader, search func(term string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := search(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
