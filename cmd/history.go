package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/pkg/history"
	"github.com/sw33tLie/medimind/pkg/report"
	"github.com/sw33tLie/medimind/pkg/session"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the saved predictions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, db, err := openSession(context.Background(), false)
		if err != nil {
			return err
		}
		defer db.Close()

		entries := app.History()
		if len(entries) == 0 {
			fmt.Println("No saved predictions.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tDATE\tDISEASE\tCONFIDENCE")
		for i, e := range entries {
			fmt.Fprintf(w, "%d\t%d\t%s %s\t%s\t%%%d\n", i+1, e.ID, e.Date, e.Time, e.Disease, e.ConfidencePercent())
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id|#n>",
	Short: "Print a saved prediction without contacting the service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noColor, _ := cmd.Flags().GetBool("no-color")

		app, db, err := openSession(context.Background(), false)
		if err != nil {
			return err
		}
		defer db.Close()

		entry, err := resolveEntry(app, args[0])
		if err != nil {
			return err
		}
		if _, err := app.ShowHistory(entry.ID); err != nil {
			return err
		}
		doc, _ := app.Document()
		fmt.Printf("%s %s\n", entry.Date, entry.Time)
		return report.WriteText(os.Stdout, doc, report.TextOptions{Theme: app.Theme(), Color: !noColor})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved prediction",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, db, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer db.Close()
		return app.ClearHistory(ctx)
	},
}

// resolveEntry finds a history entry by id, or by position when ref is "#n".
func resolveEntry(app *session.App, ref string) (history.Entry, error) {
	if pos, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(pos)
		if err != nil {
			return history.Entry{}, fmt.Errorf("invalid history position %q", ref)
		}
		return app.HistoryAt(n - 1)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return history.Entry{}, fmt.Errorf("invalid history id %q", ref)
	}
	return app.HistoryEntry(id)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyShowCmd.Flags().Bool("no-color", false, "Disable colored output")
}
