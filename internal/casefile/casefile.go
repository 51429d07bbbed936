package casefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"quell/internal/analysis"
	"quell/internal/harness"
	"quell/internal/pragma"
	"quell/internal/recording"
	"quell/internal/suppress"
	"quell/internal/workspace"
)

// Extension is the file extension of case files.
const Extension = ".toml"

// ErrInvalid reports a case file that decodes but fails validation.
var ErrInvalid = errors.New("casefile: invalid case file")

// File is a decoded case file. Workspace and Recording are resolved
// relative to the directory holding the case file.
type File struct {
	Path        string
	Name        string
	Workspace   string
	Recording   string
	ActionIndex int
	Fixable     []string
	Policy      suppress.Policy
	Syntax      pragma.Syntax
	// Diagnostics is the golden entry-A output; empty when not declared.
	Diagnostics    string
	HasDiagnostics bool
}

type rawFile struct {
	Name        string    `toml:"name"`
	Workspace   string    `toml:"workspace"`
	Recording   string    `toml:"recording"`
	ActionIndex int       `toml:"action_index"`
	Fixable     []string  `toml:"fixable"`
	Diagnostics string    `toml:"diagnostics"`
	Comment     string    `toml:"comment_prefix"`
	Policy      rawPolicy `toml:"policy"`
}

type rawPolicy struct {
	IncludeNoLocation   bool `toml:"include_no_location"`
	IncludeSuppressed   bool `toml:"include_suppressed"`
	IncludeUnsuppressed bool `toml:"include_unsuppressed"`
}

// Load decodes and validates the case file at path.
func Load(path string) (*File, error) {
	var raw rawFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return build(path, &raw, meta)
}

// Parse decodes a case file from data. path is used for error messages
// and to resolve relative references.
func Parse(path, data string) (*File, error) {
	var raw rawFile
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return build(path, &raw, meta)
}

func build(path string, raw *rawFile, meta toml.MetaData) (*File, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %s", ErrInvalid, path, undecoded[0])
	}
	if !meta.IsDefined("workspace") || strings.TrimSpace(raw.Workspace) == "" {
		return nil, fmt.Errorf("%w: %s: missing workspace", ErrInvalid, path)
	}
	if !meta.IsDefined("recording") || strings.TrimSpace(raw.Recording) == "" {
		return nil, fmt.Errorf("%w: %s: missing recording", ErrInvalid, path)
	}
	if raw.ActionIndex < 0 {
		return nil, fmt.Errorf("%w: %s: action_index must be >= 0, got %d", ErrInvalid, path, raw.ActionIndex)
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	policy := suppress.DefaultPolicy()
	if meta.IsDefined("policy", "include_no_location") {
		policy.IncludeNoLocation = raw.Policy.IncludeNoLocation
	}
	if meta.IsDefined("policy", "include_suppressed") {
		policy.IncludeSuppressed = raw.Policy.IncludeSuppressed
	}
	if meta.IsDefined("policy", "include_unsuppressed") {
		policy.IncludeUnsuppressed = raw.Policy.IncludeUnsuppressed
	}

	fixable := make([]string, 0, len(raw.Fixable))
	for i, id := range raw.Fixable {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: %s: fixable[%d] is empty", ErrInvalid, path, i)
		}
		fixable = append(fixable, id)
	}

	syntax := pragma.DefaultSyntax
	if meta.IsDefined("comment_prefix") {
		prefix := strings.TrimSpace(raw.Comment)
		if prefix == "" {
			return nil, fmt.Errorf("%w: %s: comment_prefix is empty", ErrInvalid, path)
		}
		syntax = pragma.Syntax{CommentPrefix: prefix}
	}

	dir := filepath.Dir(path)
	return &File{
		Path:           path,
		Name:           name,
		Workspace:      resolve(dir, raw.Workspace),
		Recording:      resolve(dir, raw.Recording),
		ActionIndex:    raw.ActionIndex,
		Fixable:        fixable,
		Policy:         policy,
		Syntax:         syntax,
		Diagnostics:    raw.Diagnostics,
		HasDiagnostics: meta.IsDefined("diagnostics"),
	}, nil
}

func resolve(dir, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(dir, ref)
}

// Case returns the harness case described by f: the recording replayed as
// the analyzer and a pragma fixer limited to Fixable. The driver and the
// fixer share f.Syntax.
func (f *File) Case() harness.Case {
	s := harness.ScenarioFunc(func(*workspace.Workspace) (analysis.Analyzer, suppress.Fixer, error) {
		rec, err := recording.Load(f.Recording)
		if err != nil {
			return nil, nil, err
		}
		fixer := suppress.NewPragmaFixer(f.Fixable...)
		fixer.Syntax = f.Syntax
		return analysis.Replay(rec), fixer, nil
	})
	return harness.Case{
		Name:        f.Name,
		Scenario:    s,
		Policy:      f.Policy,
		ActionIndex: f.ActionIndex,
		Syntax:      f.Syntax,
	}
}

// LoadWorkspace reads the txtar workspace named by f.
func (f *File) LoadWorkspace() (*workspace.Workspace, error) {
	ws, err := workspace.LoadArchive(f.Workspace)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return ws, nil
}
