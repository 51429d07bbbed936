// Package recording stores analyzer output so it can be replayed without
// running the analyzer: a msgpack .qrec format and SARIF 2.1.0.
package recording

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"quell/internal/diag"
	"quell/internal/source"
)

// SchemaVersion is bumped whenever Recording changes incompatibly.
const SchemaVersion uint16 = 1

// ErrSchema is returned for .qrec files written with another schema.
var ErrSchema = errors.New("recording: unsupported schema version")

// Recording is the replayable output of one analyzer run.
type Recording struct {
	Schema  uint16
	Tool    string
	Entries []Entry
}

// Entry is one recorded diagnostic. Lines and columns are 1-based and the
// end column is exclusive, as in SARIF. An empty Path means no location.
// Columns are byte columns of the NFC-normalised document; recordings of
// decomposed sources must be taken from the normalised text.
type Entry struct {
	RuleID     string
	Severity   string
	Message    string
	Path       string
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
	Suppressed bool
}

// InSource reports whether the entry points into a document.
func (e *Entry) InSource() bool {
	return e.Path != "" && e.StartLine > 0
}

// New returns an empty recording for tool.
func New(tool string) *Recording {
	return &Recording{Schema: SchemaVersion, Tool: tool}
}

// FromDiagnostics records diagnostics, resolving spans through fs.
func FromDiagnostics(tool string, diags []*diag.Diagnostic, fs *source.FileSet) *Recording {
	rec := New(tool)
	for _, d := range diags {
		e := Entry{
			RuleID:     d.ID,
			Severity:   d.Severity.String(),
			Message:    d.Message,
			Suppressed: d.Suppressed,
		}
		if sp, ok := d.Span(); ok {
			if f := fs.Get(sp.File); f != nil {
				start, end := fs.Resolve(sp)
				e.Path = f.Path
				e.StartLine, e.StartCol = int(start.Line), int(start.Col)
				e.EndLine, e.EndCol = int(end.Line), int(end.Col)
			}
		}
		rec.Entries = append(rec.Entries, e)
	}
	return rec
}

// Encode writes rec as msgpack.
func Encode(w io.Writer, rec *Recording) error {
	return msgpack.NewEncoder(w).Encode(rec)
}

// Decode reads a msgpack recording and checks its schema.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	if rec.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrSchema, rec.Schema, SchemaVersion)
	}
	return &rec, nil
}

// IsSARIF reports whether path names a SARIF file by its extension.
func IsSARIF(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".sarif" || ext == ".json"
}

// Load reads a recording, choosing SARIF or msgpack from the extension.
func Load(path string) (*Recording, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rec *Recording
	if IsSARIF(path) {
		rec, err = ReadSARIF(f)
	} else {
		rec, err = Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Save writes rec to path atomically: SARIF for .sarif/.json, msgpack otherwise.
func Save(path string, rec *Recording) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".qrec-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if IsSARIF(path) {
		err = WriteSARIF(f, rec)
	} else {
		err = Encode(f, rec)
	}
	if err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Span converts the entry position into a span of file. Entries without
// an end cover the rest of the start line.
func (e *Entry) Span(fs *source.FileSet, file source.FileID) (source.Span, error) {
	startLine, err := safecast.Conv[uint32](e.StartLine)
	if err != nil {
		return source.Span{}, err
	}
	startCol, err := safecast.Conv[uint32](e.StartCol)
	if err != nil {
		return source.Span{}, err
	}
	start, err := fs.Offset(file, source.LineCol{Line: startLine, Col: startCol})
	if err != nil {
		return source.Span{}, err
	}
	if e.EndLine == 0 {
		line, ok := fs.Get(file).LineSpan(startLine)
		if !ok {
			return source.Span{}, fmt.Errorf("line %d out of range", startLine)
		}
		return source.Span{File: file, Start: start, End: line.End}, nil
	}

	endLine, err := safecast.Conv[uint32](e.EndLine)
	if err != nil {
		return source.Span{}, err
	}
	endCol, err := safecast.Conv[uint32](e.EndCol)
	if err != nil {
		return source.Span{}, err
	}
	end, err := fs.Offset(file, source.LineCol{Line: endLine, Col: endCol})
	if err != nil {
		return source.Span{}, err
	}
	if end < start {
		end = start
	}
	return source.Span{File: file, Start: start, End: end}, nil
}
