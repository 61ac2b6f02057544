package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/pkg/report"
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Show or set the display theme",
	ValidArgs: []string{string(report.Light), string(report.Dark)},
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
			return err
		}
		return cobra.OnlyValidArgs(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, db, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer db.Close()

		if len(args) == 1 {
			if err := app.SetTheme(ctx, report.ParseTheme(args[0])); err != nil {
				return err
			}
		}
		fmt.Println(app.Theme())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
