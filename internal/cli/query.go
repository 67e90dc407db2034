package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grdf/gimple2rdf/internal/rdf"
	"github.com/grdf/gimple2rdf/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database  string
	Subject   string
	Predicate string
	Functions bool
	All       bool
	JSONLD    bool
}

// QueryStatement is one statement in JSON query output.
type QueryStatement struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query statements merged into a database",
		Long: `Query the statements merged into a SQLite database.

Exactly one selector is required: --all for every statement,
--subject or --predicate for a slice, or --functions for the global
function names present in the store. Text output prints one statement
per line, so it can be piped back into merge.

Examples:
  gimple2rdf query --db ./graph.db --all
  gimple2rdf query --db ./graph.db --subject functions:sum
  gimple2rdf query --db ./graph.db --predicate gcc:name --format json
  gimple2rdf query --db ./graph.db --functions`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "select statements about one subject")
	cmd.Flags().StringVar(&opts.Predicate, "predicate", "", "select statements carrying one predicate")
	cmd.Flags().BoolVar(&opts.Functions, "functions", false, "list global function names")
	cmd.Flags().BoolVar(&opts.All, "all", false, "select every statement")
	cmd.Flags().BoolVar(&opts.JSONLD, "jsonld", false, "emit selected statements as JSON-LD")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	selectors := 0
	if opts.All {
		selectors++
	}
	if opts.Subject != "" {
		selectors++
	}
	if opts.Predicate != "" {
		selectors++
	}
	if opts.Functions {
		selectors++
	}
	if selectors != 1 {
		return outputCommandError(formatter, &LoadError{
			Code:    ErrCodeGeneric,
			Message: "exactly one of --all, --subject, --predicate or --functions is required",
		})
	}
	if opts.JSONLD && opts.Functions {
		return outputCommandError(formatter, &LoadError{
			Code:    ErrCodeGeneric,
			Message: "--jsonld cannot be combined with --functions",
		})
	}

	// Queries read; they must not create an empty database.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return outputCommandError(formatter, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("database not found: %s", opts.Database),
		})
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

	if opts.Functions {
		names, err := st.Functions(ctx)
		if err != nil {
			return outputRunError(formatter, ErrCodeStoreFailed, fmt.Sprintf("querying functions: %v", err))
		}
		return outputFunctions(formatter, names)
	}

	var stmts []rdf.Statement
	switch {
	case opts.All:
		stmts, err = st.All(ctx)
	case opts.Subject != "":
		stmts, err = st.BySubject(ctx, opts.Subject)
	default:
		stmts, err = st.ByPredicate(ctx, opts.Predicate)
	}
	if err != nil {
		return outputRunError(formatter, ErrCodeStoreFailed, fmt.Sprintf("querying statements: %v", err))
	}

	formatter.VerboseLog("Matched %d statement(s)", len(stmts))

	if opts.JSONLD {
		return outputQueryJSONLD(formatter, stmts)
	}
	return outputStatements(formatter, stmts)
}

// outputFunctions outputs the global function name list.
func outputFunctions(formatter *OutputFormatter, names []string) error {
	if formatter.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"functions": names,
			"count":     len(names),
		})
	}

	for _, name := range names {
		fmt.Fprintln(formatter.Writer, name)
	}
	return nil
}

// outputStatements outputs statements, one canonical line each in text
// mode.
func outputStatements(formatter *OutputFormatter, stmts []rdf.Statement) error {
	if formatter.Format == "json" {
		out := make([]QueryStatement, len(stmts))
		for i, stmt := range stmts {
			out[i] = QueryStatement{Subject: stmt.Subject, Predicate: stmt.Predicate, Object: stmt.Object}
		}
		return formatter.Success(map[string]interface{}{
			"statements": out,
			"count":      len(out),
		})
	}

	for _, stmt := range stmts {
		fmt.Fprintln(formatter.Writer, stmt.String())
	}
	return nil
}

// outputQueryJSONLD converts the selected statements to JSON-LD.
func outputQueryJSONLD(formatter *OutputFormatter, stmts []rdf.Statement) error {
	doc, err := rdf.ToJSONLD(stmts, queryPrefixes(stmts))
	if err != nil {
		return outputRunError(formatter, ErrCodeExportFailed, fmt.Sprintf("converting to JSON-LD: %v", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(doc)
	}

	enc := json.NewEncoder(formatter.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// queryPrefixes builds the prefix table for stored statements: the
// fixed namespaces plus a function-namespace binding for every other
// prefix seen. Stored statements mint non-fixed names only under
// function namespaces.
func queryPrefixes(stmts []rdf.Statement) map[string]string {
	prefixes := rdf.StandardPrefixes()
	for _, stmt := range stmts {
		collectPrefix(prefixes, stmt.Subject)
		collectPrefix(prefixes, stmt.Predicate)
		for _, tok := range objectTokens(stmt.Object) {
			collectPrefix(prefixes, tok)
		}
	}
	return prefixes
}

// objectTokens splits a rendered object into its name tokens. Literal
// objects yield none.
func objectTokens(object string) []string {
	if strings.HasPrefix(object, `"`) {
		return nil
	}
	if strings.HasPrefix(object, "(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(object, "("), ")")
		return strings.Fields(inner)
	}
	return []string{object}
}

func collectPrefix(prefixes map[string]string, token string) {
	if strings.HasPrefix(token, `"`) {
		return
	}
	prefix, _, ok := strings.Cut(token, ":")
	if !ok {
		return
	}
	if _, known := prefixes[prefix]; !known {
		prefixes[prefix] = rdf.FunctionBase(prefix)
	}
}
