package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/parser"
)

func newVerifyCmd() *cobra.Command {
	var noLinks bool

	cmd := &cobra.Command{
		Use:   "verify [input.xlsx]",
		Short: "Compare sheetpack's reading of a package with excelize's",
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

			includeLinks := !noLinks
			theirs, err := parser.Extract(inputPath, parser.Options{IncludeLinks: &includeLinks})
			if err != nil {
				return err
			}
			ours := doc.Snapshot(filepath.Base(inputPath))
			if noLinks {
				dropLinks(ours)
			}

			mismatches := models.Compare(ours, theirs)
			out := cmd.OutOrStdout()
			for _, m := range mismatches {
				writeLine(out, "%s", color.RedString("%s", m))
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%s mismatches", humanize.Comma(int64(len(mismatches))))
			}

			writeLine(out, "%s", color.GreenString("%s: %s sheets, %s cells match",
				filepath.Base(inputPath), humanize.Comma(int64(len(ours.Sheets))), humanize.Comma(int64(countCells(ours)))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noLinks, "no-links", false, "Skip hyperlink comparison")
	return cmd
}

func countCells(wb *models.WorkbookData) int {
	n := 0
	for _, s := range wb.Sheets {
		for _, r := range s.Rows {
			n += len(r.C)
		}
	}
	return n
}

func dropLinks(wb *models.WorkbookData) {
	for i := range wb.Sheets {
		for j := range wb.Sheets[i].Rows {
			wb.Sheets[i].Rows[j].Links = nil
		}
	}
}
