package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grdf/gimple2rdf/internal/export"
	"github.com/grdf/gimple2rdf/internal/gimple"
	"github.com/grdf/gimple2rdf/internal/rdf"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output   string // output file path
	Policy   string // policy file path
	Prefix   string // namespace prefix override
	NoHeader bool
	JSONLD   bool
}

// ExportStats holds summary statistics for one export.
type ExportStats struct {
	Function   string `json:"function"`
	Prefix     string `json:"prefix"`
	Statements int    `json:"statements"`
	Output     string `json:"output,omitempty"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <dump.json>",
		Short: "Export a GIMPLE dump as RDF statements",
		Long: `Export a JSON dump of one GIMPLE function as RDF statements.

The dump is decoded into a function graph, walked under the active
policy, and written out one statement per line, preceded by the
@prefix header. Pass "-" to read the dump from standard input.

The --format flag shapes command reporting only; statement output is
the same either way.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "policy file (.cue, .yaml or .yml)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "namespace prefix (default derives from the function)")
	cmd.Flags().BoolVar(&opts.NoHeader, "no-header", false, "suppress the fixed @prefix header block")
	cmd.Flags().BoolVar(&opts.JSONLD, "jsonld", false, "emit JSON-LD instead of statement lines")

	return cmd
}

func runExport(opts *ExportOptions, dumpPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting output
		Verbose:   opts.Verbose,
	}

	in, err := openInput(cmd, dumpPath)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	fn, err := gimple.Decode(in)
	in.Close()
	if err != nil {
		return outputRunError(formatter, ErrCodeDecodeFailed, fmt.Sprintf("decoding %s: %v", dumpPath, err))
	}

	name := ""
	if fn.Decl != nil {
		name = fn.Decl.Name
	}
	formatter.VerboseLog("Decoded function %q from %s", name, dumpPath)

	pol, err := LoadPolicy(opts.Policy)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	if opts.Policy != "" {
		formatter.VerboseLog("Loaded policy from %s", opts.Policy)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = export.DerivePrefix(fn)
	}
	exp := export.New(prefix, export.WithPolicy(pol))

	var body bytes.Buffer
	if err := exp.Export(fn, &body); err != nil {
		return outputRunError(formatter, ErrCodeExportFailed, fmt.Sprintf("exporting %s: %v", dumpPath, err))
	}

	stmts, err := rdf.ReadStatements(bytes.NewReader(body.Bytes()))
	if err != nil {
		return outputRunError(formatter, ErrCodeExportFailed, fmt.Sprintf("re-reading exported statements: %v", err))
	}

	var out bytes.Buffer
	if opts.JSONLD {
		doc, err := rdf.ToJSONLD(stmts, exportPrefixes(exp.Prefix()))
		if err != nil {
			return outputRunError(formatter, ErrCodeExportFailed, fmt.Sprintf("converting to JSON-LD: %v", err))
		}
		enc := json.NewEncoder(&out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return outputRunError(formatter, ErrCodeExportFailed, fmt.Sprintf("encoding JSON-LD: %v", err))
		}
	} else {
		if !opts.NoHeader {
			_ = rdf.WriteHeader(&out)
		}
		_ = rdf.WriteFunctionPrefix(&out, exp.Prefix())
		out.Write(body.Bytes())
	}

	stats := ExportStats{
		Function:   name,
		Prefix:     exp.Prefix(),
		Statements: len(stmts),
		Output:     opts.Output,
	}

	// Write to file if --output specified; the summary goes through the
	// formatter. Without it, statements go to stdout raw.
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, out.Bytes(), 0644); err != nil {
			return outputCommandError(formatter, &LoadError{
				Code:    ErrCodeWriteFailed,
				Message: fmt.Sprintf("writing output file: %v", err),
			})
		}
		return outputExportSuccess(formatter, stats)
	}

	if _, err := out.WriteTo(cmd.OutOrStdout()); err != nil {
		return outputCommandError(formatter, &LoadError{
			Code:    ErrCodeWriteFailed,
			Message: fmt.Sprintf("writing output: %v", err),
		})
	}
	formatter.VerboseLog("Exported %d statement(s) under prefix %s", stats.Statements, stats.Prefix)
	return nil
}

// outputExportSuccess outputs the export summary after a file write.
func outputExportSuccess(formatter *OutputFormatter, stats ExportStats) error {
	if formatter.Format == "json" {
		return formatter.Success(stats)
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Exported %d statement(s) for %s\n\n", stats.Statements, stats.Function)
	fmt.Fprintf(formatter.Writer, "Wrote statements to %s\n", stats.Output)
	return nil
}

// exportPrefixes returns the prefix table for one export: the fixed
// namespaces plus the per-function prefix.
func exportPrefixes(prefix string) map[string]string {
	prefixes := rdf.StandardPrefixes()
	prefixes[prefix] = rdf.FunctionBase(prefix)
	return prefixes
}
