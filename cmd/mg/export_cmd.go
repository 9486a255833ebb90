package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alfredjeanlab/maintgraph/internal/events"
	"github.com/alfredjeanlab/maintgraph/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Build the graph and write it as JSONL",
	GroupID: "system",
	Long: `Build the graph and write it as JSONL: a header line, then one line per
node, edge and audit issue.

Without flags the export goes to stdout. --out writes it to a file.
--push sends it to every destination configured through the
MAINTGRAPH_EXPORT_* variables (S3, git, file) and publishes an
export-completed event.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		push, _ := cmd.Flags().GetBool("push")

		logger := newLogger(slog.LevelWarn)
		rt, err := openRuntime(logger, nil)
		if err != nil {
			return err
		}
		defer rt.close()
		ctx := cmd.Context()

		if push {
			dests := rt.exportDestinations(ctx)
			if out != "" {
				dests = append(dests, export.NewFileDestination(out))
			}
			if len(dests) == 0 {
				return errors.New("no export destinations configured")
			}
			done := export.NewScheduler(rt.analyzer, dests, 0, rt.publisher, logger).ExportOnce(ctx)
			if err := output(done, func(w io.Writer) { printExportCompleted(w, done) }); err != nil {
				return err
			}
			if done.Failed > 0 {
				return fmt.Errorf("%d of %d destinations failed", done.Failed, done.Destinations)
			}
			return nil
		}

		snap := rt.analyzer.Rebuild(ctx)
		if out == "" {
			return export.WriteJSONL(snap, os.Stdout)
		}
		var buf bytes.Buffer
		if err := export.WriteJSONL(snap, &buf); err != nil {
			return err
		}
		dest := export.NewFileDestination(out)
		if err := dest.Write(ctx, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", buf.Len(), dest.Name())
		return nil
	},
}

func printExportCompleted(w io.Writer, done events.ExportCompleted) {
	fmt.Fprintf(w, "Exported %d bytes to %d destinations (%d failed)\n", done.Bytes, done.Destinations, done.Failed)
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "write the export to this file")
	exportCmd.Flags().Bool("push", false, "write to the configured export destinations")
}
