package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/grdf/gimple2rdf/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Operational failures already reported themselves through the
	// command's formatter. Usage errors from cobra have not been printed
	// anywhere yet.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
