package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/internal/utils"
	"github.com/sw33tLie/medimind/pkg/regions"
	"github.com/sw33tLie/medimind/pkg/report"
	"github.com/sw33tLie/medimind/pkg/session"
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict [symptom...]",
	Short: "Predict the most likely disease for a set of symptoms",
	Long: `Builds a selection from the given symptom identifiers and search queries, sends it to the
prediction service and prints the report. Each query picks the first matching symptom,
narrowed by --region when set. The report is saved to the local history.`,
	Example: `  medimind predict headache nausea
  medimind predict -q "baş ağrısı" -q bulantı
  medimind predict -r skin -q kaşıntı --export report.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		queries, _ := cmd.Flags().GetStringArray("query")
		regionName, _ := cmd.Flags().GetString("region")
		exportPath, _ := cmd.Flags().GetString("export")
		formatName, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")

		region, err := regions.Parse(regionName)
		if err != nil {
			return err
		}

		ctx := context.Background()
		app, db, err := openSession(ctx, true)
		if err != nil {
			return err
		}
		defer db.Close()

		if len(app.Catalog()) == 0 {
			return errEmptyCatalog
		}
		app.SetRegion(region)

		for _, value := range args {
			if _, err := app.Select(value); err != nil {
				return err
			}
		}
		for _, q := range queries {
			matches := app.Visible(q)
			if len(matches) == 0 {
				return fmt.Errorf("no symptom matches %q", q)
			}
			app.Select(matches[0].Value)
			utils.Log.Debugf("%q -> %s (%s)", q, matches[0].Label, matches[0].Value)
		}

		if _, err := app.Submit(ctx); err != nil {
			if errors.Is(err, session.ErrEmptySelection) {
				return err
			}
			utils.Log.Debugf("Prediction failed: %v", err)
			return errors.New(app.ErrorMessage())
		}

		doc, _ := app.Document()
		if err := report.WriteText(os.Stdout, doc, report.TextOptions{Theme: app.Theme(), Color: !noColor}); err != nil {
			return err
		}

		if exportPath != "" {
			return exportTo(ctx, app, exportPath, formatName)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringArrayP("query", "q", nil, "Pick the first symptom matching this text (repeatable)")
	predictCmd.Flags().StringP("region", "r", "", "Body region narrowing the query matches")
	predictCmd.Flags().StringP("export", "o", "", "Also export the report to this file or directory")
	predictCmd.Flags().StringP("format", "f", "", "Export format: pdf, html or png (default from file extension, else pdf)")
	predictCmd.Flags().Bool("no-color", false, "Disable colored output")
}
