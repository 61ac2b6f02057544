package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/pkg/regions"
)

var errEmptyCatalog = errors.New("symptom catalog is empty, is the prediction service reachable?")

// symptomsCmd represents the symptoms command
var symptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "List the symptoms offered by the prediction service",
	Example: `  medimind symptoms
  medimind symptoms -r head
  medimind symptoms -q ağrı`,
	RunE: func(cmd *cobra.Command, args []string) error {
		regionName, _ := cmd.Flags().GetString("region")
		query, _ := cmd.Flags().GetString("query")

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

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, o := range app.Visible(query) {
			fmt.Fprintf(w, "%s\t%s\n", o.Value, o.Label)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(symptomsCmd)
	symptomsCmd.Flags().StringP("region", "r", "", "Only show symptoms of a body region (see 'medimind regions')")
	symptomsCmd.Flags().StringP("query", "q", "", "Only show symptoms matching this text")
}
