package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Load reads and compiles a policy file. The extension picks the syntax:
// .cue goes through the CUE evaluator, .yaml and .yml decode as YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		ctx := cuecontext.New()
		return Compile(ctx.CompileString(string(data), cue.Filename(path)))
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported policy file extension %q (want .cue, .yaml or .yml)", filepath.Ext(path))
	}
}
