package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	imap "github.com/meszmate/imapline"
	"github.com/meszmate/imapline/seqset"
	"github.com/meszmate/imapline/wire"
)

func newParseCmd() *cobra.Command {
	var (
		literalFiles   []string
		literalPlus    bool
		file           string
		expandSequence bool
	)

	cmd := &cobra.Command{
		Use:   "parse [line]",
		Short: "Parse one IMAP line and print its decoded tag, command, and attributes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := readLine(args, file)
			if err != nil {
				return fmt.Errorf("imapline: reading input: %w", err)
			}

			literals := make([][]byte, 0, len(literalFiles))
			for _, path := range literalFiles {
				payload, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("imapline: reading literal %s: %w", path, err)
				}
				literals = append(literals, payload)
			}

			resp, err := wire.Parse(line, wire.Options{
				Literals:    literals,
				LiteralPlus: literalPlus,
			})
			if err != nil {
				return fmt.Errorf("imapline: %w", err)
			}

			logger.Debug("parsed line", "tag", resp.Tag, "command", resp.Command, "attributes", len(resp.Attributes))
			if resp.Command == "BAD" && len(resp.Attributes) > 0 && resp.Attributes[0].Value == "Server Unavailable." {
				logger.Warn("recovered Server Unavailable response")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, wire.ResponseString(resp))

			if expandSequence {
				printSequences(out, resp.Attributes)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&literalFiles, "literal", nil, "file containing a pre-captured literal payload, repeatable in occurrence order")
	cmd.Flags().BoolVar(&literalPlus, "literal-plus", false, "accept the {n+} non-synchronizing literal form")
	cmd.Flags().StringVar(&file, "file", "", "read the line from file instead of stdin (a positional line argument takes precedence)")
	cmd.Flags().BoolVar(&expandSequence, "expand-sequence", false, "expand any Sequence attribute into its ranges")
	return cmd
}

// readLine resolves the line to parse: the positional argument, a
// --file, or the first line of stdin, in that order of preference.
func readLine(args []string, file string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	var r io.Reader
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = os.Stdin
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func printSequences(out io.Writer, attrs []imap.Attribute) {
	for _, a := range attrs {
		if a.Kind == imap.KindSequence {
			set, err := seqset.Parse(a)
			if err != nil {
				fmt.Fprintf(out, "  sequence %q: %v\n", a.Value, err)
				continue
			}
			fmt.Fprintf(out, "  sequence %q -> ranges %v (dynamic=%v)\n", a.Value, set.Ranges, set.Dynamic())
		}
		if a.Kind == imap.KindList {
			printSequences(out, a.Items)
		}
	}
}
