package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/output"
)

func newInspectCmd() *cobra.Command {
	var (
		outputPath    string
		pretty        bool
		sheetsDir     string
		printAreasDir string
	)

	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Dump the content of a package as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			doc, err := openDocument(inputPath, opts)
			if err != nil {
				return err
			}
			wb := doc.Snapshot(filepath.Base(inputPath))

			jsonData, err := output.WorkbookToJSON(wb, pretty)
			if err != nil {
				return err
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return err
				}
			} else if sheetsDir == "" && printAreasDir == "" {
				writeLine(cmd.OutOrStdout(), "%s", jsonData)
			}

			if sheetsDir != "" {
				if _, err := output.WriteSheetFiles(wb, sheetsDir, pretty); err != nil {
					return err
				}
			}
			if printAreasDir != "" {
				if _, err := output.WritePrintAreaFiles(wb, printAreasDir, pretty); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	cmd.Flags().StringVar(&printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")
	return cmd
}
