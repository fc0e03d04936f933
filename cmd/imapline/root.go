package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// logger is the CLI's shared slog logger, defaulted the way the
// teacher's client.Options defaults its Logger field.
var logger = slog.Default()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "imapline",
		Short:         "Inspect IMAP4rev1 response/command lines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd())
	return root
}

func init() {
	if os.Getenv("IMAPLINE_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
