// Package main provides the CLI entry point for sheetask.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configPath  string
	verbose     bool
	xlsxPath    string
	spreadsheet string
	token       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "sheetask",
		Short: "Ask a language model about spreadsheet data",
		Long: `sheetask answers questions about a spreadsheet. Mention sheets, named
ranges or tables with @Name (or @"Name with spaces") and their data is sent
to the model as XML context.

The spreadsheet is either a Google Sheet (--spreadsheet, with an OAuth access
token in --token or SHEETASK_ACCESS_TOKEN) or a local workbook (--xlsx).`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default: user config dir)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&flags.xlsxPath, "xlsx", "", "Local .xlsx workbook to read instead of Google Sheets")
	pf.StringVar(&flags.spreadsheet, "spreadsheet", "", "Google Sheets spreadsheet id or URL")
	pf.StringVar(&flags.token, "token", "", "Google OAuth access token")

	rootCmd.AddCommand(
		newAskCmd(flags),
		newContextCmd(flags),
		newMentionsCmd(flags),
		newContextsCmd(flags),
		newModelsCmd(flags),
		newKeyCmd(flags),
		newServeCmd(flags),
		newConfigCmd(flags),
	)
	return rootCmd
}
