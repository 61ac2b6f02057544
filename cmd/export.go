package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/internal/utils"
	"github.com/sw33tLie/medimind/pkg/report"
	"github.com/sw33tLie/medimind/pkg/session"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [id|#n]",
	Short: "Export a saved prediction as a PDF, HTML or PNG report",
	Long: `Exports a history entry, the newest one by default. Entries are referred to by id or by
position (#1 is the newest). Without --output the report is written to the current directory
as MediMind_Rapor_<date>.<ext>.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		formatName, _ := cmd.Flags().GetString("format")

		ref := "#1"
		if len(args) == 1 {
			ref = args[0]
		}

		ctx := context.Background()
		app, db, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer db.Close()

		entry, err := resolveEntry(app, ref)
		if err != nil {
			return err
		}
		if _, err := app.ShowHistory(entry.ID); err != nil {
			return err
		}
		return exportTo(ctx, app, output, formatName)
	},
}

// exportTo writes the report on display to path. An empty path or a directory
// gets the default file name; the format comes from formatName, else from the
// file extension, else PDF.
func exportTo(ctx context.Context, app *session.App, path, formatName string) error {
	if formatName == "" && filepath.Ext(path) != "" {
		formatName = filepath.Ext(path)
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	if path == "" {
		path = app.ExportFilename(format)
	} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, app.ExportFilename(format))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := app.Export(ctx, f, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("Rapor indirilirken bir hata oluştu: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	utils.Log.Infof("Report saved to %s", path)
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file or directory")
	exportCmd.Flags().StringP("format", "f", "", "Export format: pdf, html or png (default from file extension, else pdf)")
}
