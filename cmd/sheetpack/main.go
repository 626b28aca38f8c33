// Package main provides the CLI entry point for sheetpack-go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack"
)

var (
	configPath string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetpack",
		Short: "Read, write and check spreadsheet packages",
		Long: `sheetpack-go writes and reads .xlsx packages, dumps their content as
JSON, and checks them against an independent reader.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML or JSON file with document options")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Log level: debug, info, warning, error")

	rootCmd.AddCommand(newDemoCmd(), newInspectCmd(), newVerifyCmd())
	return rootCmd
}

// loadOptions returns the document options from --config, or the defaults.
func loadOptions() (sheetpack.Options, error) {
	if configPath == "" {
		return sheetpack.DefaultOptions(), nil
	}
	opts, err := sheetpack.LoadOptions(configPath)
	if err != nil {
		return sheetpack.Options{}, err
	}
	return opts, nil
}

// openDocument loads path, failing when it does not hold a package.
func openDocument(path string, opts sheetpack.Options) (*sheetpack.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	doc, err := sheetpack.Open(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return doc, nil
}

func writeLine(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
