package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/pkg/regions"
)

// regionsCmd represents the regions command
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the body regions used to narrow the symptom list",
	RunE: func(cmd *cobra.Command, args []string) error {
		offline, _ := cmd.Flags().GetBool("offline")

		ctx := context.Background()
		app, db, err := openSession(ctx, !offline)
		if err != nil {
			return err
		}
		defer db.Close()

		catalog := app.Catalog()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "REGION\tLABEL\tSYMPTOMS")
		for _, r := range regions.All() {
			count := len(r.Symptoms())
			if len(catalog) > 0 {
				count = len(regions.Filter(r, catalog))
			}
			fmt.Fprintf(w, "%s\t%s\t%d\n", r, r.Label(), count)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
	regionsCmd.Flags().Bool("offline", false, "Count the built-in region table instead of the service catalog")
}
