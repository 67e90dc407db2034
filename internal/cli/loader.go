package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/grdf/gimple2rdf/internal/export"
	"github.com/grdf/gimple2rdf/internal/policy"
)

// LoadError represents an error that occurred while loading command
// inputs (dumps, statement files, policies).
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadPolicy loads the exporter policy from path. An empty path selects
// the built-in default policy. A loaded policy replaces the default
// wholesale.
func LoadPolicy(path string) (*export.Policy, error) {
	if path == "" {
		return export.DefaultPolicy(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("policy file not found: %s", path)}
	}

	file, err := policy.Load(path)
	if err != nil {
		return nil, convertPolicyError(path, err)
	}
	return file.Policy(), nil
}

// convertPolicyError converts a policy loading error to a LoadError with
// position info.
func convertPolicyError(path string, err error) *LoadError {
	var compileErr *policy.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodePolicyInvalid,
		Message: fmt.Sprintf("%s: %v", path, err),
	}
}

// openInput opens a file argument for reading; "-" selects the
// command's standard input.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("opening %s: %v", path, err)}
	}
	return f, nil
}

// outputCommandError reports err through the formatter and returns it
// wrapped with the command-error exit code.
func outputCommandError(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code, message = loadErr.Code, loadErr.Message
		if loadErr.Pos.IsValid() {
			message = fmt.Sprintf("%s:%d:%d: %s",
				loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column(), loadErr.Message)
		}
	}
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputRunError reports an operational failure through the formatter
// and returns it wrapped with the failure exit code.
func outputRunError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeReadFailed   = "E002" // Input read error
	ErrCodeDecodeFailed = "E003" // Dump decode failed
	ErrCodeParseFailed  = "E004" // Statement parse failed
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeStoreFailed  = "E006" // Store operation failed
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeExportFailed = "E008" // Export failed

	// Policy validation errors
	ErrCodePolicyInvalid = "E101" // Malformed policy file
	ErrCodePolicyKind    = "E102" // Invalid kind rules
	ErrCodePolicyDeny    = "E103" // Invalid deny list
	ErrCodePolicyCUE     = "E104" // CUE evaluation error
)

// MapFieldToErrorCode maps a policy error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "cue":
		return ErrCodePolicyCUE
	case field == "deny" || field == "deny_kinds":
		return ErrCodePolicyDeny
	case strings.HasPrefix(field, "kinds"):
		return ErrCodePolicyKind
	default:
		return ErrCodePolicyInvalid
	}
}
