package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grdf/gimple2rdf/internal/rdf"
	"github.com/grdf/gimple2rdf/internal/store"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	*RootOptions
	Database string
}

// MergeFileResult reports the merge outcome for one input file.
type MergeFileResult struct {
	File      string `json:"file"`
	Run       string `json:"run"`
	Prefix    string `json:"prefix,omitempty"`
	Inserted  int    `json:"inserted"`
	Duplicate int    `json:"duplicate"`
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge <file.ttl ...>",
		Short: "Merge exported statement files into a database",
		Long: `Merge exported statement files into a SQLite database.

Each file becomes one run: its statements are inserted in file order,
and statements already present in the database are counted as
duplicates instead of being inserted again. The database is created if
it does not exist.

Examples:
  gimple2rdf merge --db ./graph.db sum.ttl
  gimple2rdf merge --db ./graph.db sum.ttl main.ttl --verbose`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runMerge(opts *MergeOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(formatter, &LoadError{
			Code:    ErrCodeStoreFailed,
			Message: fmt.Sprintf("opening database: %v", err),
		})
	}
	defer st.Close()

	results := make([]MergeFileResult, 0, len(files))
	inserted, duplicate := 0, 0
	for _, file := range files {
		in, err := openInput(cmd, file)
		if err != nil {
			return outputCommandError(formatter, err)
		}
		doc, err := rdf.ReadDocument(in)
		in.Close()
		if err != nil {
			return outputRunError(formatter, ErrCodeParseFailed, fmt.Sprintf("parsing %s: %v", file, err))
		}

		run, stats, err := st.Merge(ctx, file, doc.FunctionPrefix(), doc.Statements)
		if err != nil {
			return outputRunError(formatter, ErrCodeStoreFailed, fmt.Sprintf("merging %s: %v", file, err))
		}

		formatter.VerboseLog("Merged %s as run %s: %d inserted, %d duplicate",
			file, run.ID, stats.Inserted, stats.Duplicate)
		results = append(results, MergeFileResult{
			File:      file,
			Run:       run.ID,
			Prefix:    run.Prefix,
			Inserted:  stats.Inserted,
			Duplicate: stats.Duplicate,
		})
		inserted += stats.Inserted
		duplicate += stats.Duplicate
	}

	return outputMergeSuccess(formatter, results, inserted, duplicate)
}

// outputMergeSuccess outputs per-file merge results.
func outputMergeSuccess(formatter *OutputFormatter, results []MergeFileResult, inserted, duplicate int) error {
	if formatter.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"files":     results,
			"inserted":  inserted,
			"duplicate": duplicate,
		})
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Merged %d file(s): %d inserted, %d duplicate\n\n",
		len(results), inserted, duplicate)
	for _, r := range results {
		fmt.Fprintf(formatter.Writer, "  %s: %d inserted, %d duplicate\n", r.File, r.Inserted, r.Duplicate)
	}
	return nil
}
