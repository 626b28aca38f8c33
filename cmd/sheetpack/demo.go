package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [dir]",
		Short: "Write the demonstration workbooks into dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			written, err := runDemo(dir, opts)
			if err != nil {
				return err
			}
			for _, path := range written {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				writeLine(cmd.OutOrStdout(), "wrote %s (%s)", path, humanize.Bytes(uint64(info.Size())))
			}
			return nil
		},
	}
}

type demoStep struct {
	file  string
	build func(*sheetpack.Document) error
}

var demoSteps = []demoStep{
	{"hello.xlsx", buildHello},
	{"lists.xlsx", buildLists},
	{"sheets.xlsx", buildSheets},
}

// runDemo writes each demonstration workbook into dir and reads the first
// one back, logging what it finds.
func runDemo(dir string, opts sheetpack.Options) ([]string, error) {
	var written []string
	for _, step := range demoSteps {
		path := filepath.Join(dir, step.file)
		doc := sheetpack.New(opts)
		if err := step.build(doc); err != nil {
			return written, errors.Wrap(err, step.file)
		}
		if err := doc.SaveAs(path); err != nil {
			return written, errors.Wrapf(err, "save %s", path)
		}
		written = append(written, path)
	}

	hello, err := openDocument(written[0], opts)
	if err != nil {
		return written, err
	}
	ws := hello.Workbook().CurrentSheet()
	for _, ref := range []string{"A1", "B1", "C1", "D1"} {
		v := ws.ReadAt(ref)
		logrus.WithFields(logrus.Fields{"cell": ref, "type": v.Type()}).Infof("read %v", v.Interface())
	}
	return written, nil
}

func buildHello(doc *sheetpack.Document) error {
	ws := doc.Workbook().CurrentSheet()
	if err := ws.WriteRow(1, 1, []any{"Hello sheetpack!", 2, true, time.Now().UTC().Truncate(time.Second)}); err != nil {
		return err
	}
	return ws.WriteAt("B1", 2)
}

func buildLists(doc *sheetpack.Document) error {
	ws := doc.Workbook().CurrentSheet()
	numbers := []any{1, 2, 3}
	letters := []any{"h", "e", "l", "l", "o"}
	writes := []func() error{
		func() error { return ws.WriteColumn(1, 1, numbers) },
		func() error { return ws.WriteRow(1, 4, numbers) },
		func() error { return ws.WriteRow(1, 8, []any{"hello", "world", "sheetpack"}) },
		func() error { return ws.WriteRow(2, 8, []any{1, "world", 4.4, nil}) },
		func() error { return ws.WriteColumn(1, 2, letters) },
		func() error { return ws.WriteColumn(1, 3, letters) },
		func() error { return ws.WriteColumn(1, 4, letters) },
		func() error { return ws.WriteColumn(10, 10, letters) },
	}
	for _, write := range writes {
		if err := write(); err != nil {
			return err
		}
	}
	return nil
}

func buildSheets(doc *sheetpack.Document) error {
	wb := doc.Workbook()
	first := wb.CurrentSheet()
	for i := 1; i < 20; i++ {
		for j := 1; j < 15; j++ {
			if err := first.Write(i, j, "R "+humanize.Comma(int64(i))+" C "+humanize.Comma(int64(j))); err != nil {
				return err
			}
		}
	}

	texts := []struct{ name, text string }{
		{"", "Hello sheetpack"},
		{"", "This will be deleted..."},
		{"HiddenSheet", "This sheet is hidden."},
		{"VeryHiddenSheet", "This sheet is very hidden."},
	}
	for _, t := range texts {
		ws, err := wb.AppendSheet(t.name, worksheet.KindWorksheet)
		if err != nil {
			return err
		}
		if err := ws.Write(2, 2, t.text); err != nil {
			return err
		}
	}

	if err := wb.RenameSheetByName("HiddenSheet", "Hello World"); err != nil {
		return err
	}
	if err := wb.DeleteSheet(2); err != nil {
		return err
	}
	if err := wb.DefineName("_xlnm.Print_Area", "'Sheet 1'!$A$1:$N$19", "Sheet 1"); err != nil {
		return err
	}
	return wb.SetCurrentSheet(1)
}
