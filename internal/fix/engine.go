package fix

import (
	"errors"
	"fmt"
	"sort"

	"quell/internal/source"
)

var (
	// ErrNoEdits is returned when an action carries no edits.
	ErrNoEdits = errors.New("fix: action has no edits")
	// ErrConflictingEdits is returned when two edits of one action overlap.
	ErrConflictingEdits = errors.New("fix: conflicting edits")
	// ErrGuardMismatch is returned when an edit's OldText does not match the buffer.
	ErrGuardMismatch = errors.New("fix: existing text does not match expected content")
	// ErrSpanOutOfRange is returned when an edit points outside its file.
	ErrSpanOutOfRange = errors.New("fix: edit span out of range")
)

// ApplyResult holds the rewritten content of every file touched by an action.
// Nothing is written to disk.
type ApplyResult struct {
	Files     map[source.FileID][]byte
	EditCount int
}

// Text returns the new content of id, falling back to the original content
// for files the action did not touch.
func (r *ApplyResult) Text(fs *source.FileSet, id source.FileID) string {
	if r != nil {
		if buf, ok := r.Files[id]; ok {
			return string(buf)
		}
	}
	if f := fs.Get(id); f != nil {
		return string(f.Content)
	}
	return ""
}

type indexedEdit struct {
	edit  TextEdit
	order int
}

// Apply applies all edits of action to in-memory copies of the files in fs.
// Edits are all-or-nothing: any conflict, guard mismatch or bad span fails
// the whole action and no result is returned.
func Apply(fs *source.FileSet, action Action) (*ApplyResult, error) {
	if fs == nil {
		return nil, fmt.Errorf("fix: FileSet is nil")
	}
	if len(action.Edits) == 0 {
		return nil, ErrNoEdits
	}

	buckets := groupEditsByFile(action.Edits)
	result := &ApplyResult{Files: make(map[source.FileID][]byte, len(buckets))}

	for fileID, edits := range buckets {
		file := fs.Get(fileID)
		if file == nil {
			return nil, fmt.Errorf("%w: unknown file id %d", ErrSpanOutOfRange, fileID)
		}
		if a, b, ok := firstConflict(edits); ok {
			return nil, fmt.Errorf("%w in %s: %v and %v", ErrConflictingEdits, file.Path, a.Span, b.Span)
		}

		// Apply back to front so earlier offsets stay valid. Insertions at the
		// same offset keep their input order.
		sort.SliceStable(edits, func(i, j int) bool {
			ei, ej := edits[i].edit.Span, edits[j].edit.Span
			if ei.Start != ej.Start {
				return ei.Start > ej.Start
			}
			if ei.End != ej.End {
				return ei.End > ej.End
			}
			return edits[i].order > edits[j].order
		})

		working := append([]byte(nil), file.Content...)
		for _, ie := range edits {
			edit := ie.edit
			start, end := int(edit.Span.Start), int(edit.Span.End)
			if end < start || end > len(working) {
				return nil, fmt.Errorf("%w: %v in %s (len %d)", ErrSpanOutOfRange, edit.Span, file.Path, len(working))
			}
			if edit.OldText != "" && string(working[start:end]) != edit.OldText {
				return nil, fmt.Errorf("%w: %s at %v: want %q, have %q", ErrGuardMismatch, file.Path, edit.Span, edit.OldText, working[start:end])
			}
			suffix := append([]byte(nil), working[end:]...)
			working = append(append(working[:start], edit.NewText...), suffix...)
		}
		result.Files[fileID] = working
		result.EditCount += len(edits)
	}
	return result, nil
}

func firstConflict(edits []indexedEdit) (TextEdit, TextEdit, bool) {
	for i := range edits {
		for j := i + 1; j < len(edits); j++ {
			if spansConflict(edits[i].edit, edits[j].edit) {
				return edits[i].edit, edits[j].edit, true
			}
		}
	}
	return TextEdit{}, TextEdit{}, false
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// (Start == End) never conflict. A zero-length edit conflicts with a non-zero
// span if its position is strictly inside that span (Start < pos < End). For
// two non-zero spans, any overlap yields a conflict.
func spansConflict(a, b TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []TextEdit) map[source.FileID][]indexedEdit {
	buckets := make(map[source.FileID][]indexedEdit)
	for i, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], indexedEdit{edit: edit, order: i})
	}
	return buckets
}
