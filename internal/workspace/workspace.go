package workspace

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/tools/txtar"

	"quell/internal/source"
)

// DefaultProject is the project name used for single-project workspaces.
const DefaultProject = "main"

// expectedPrefix marks archive entries holding the expected fixed output
// of the document with the same name.
const expectedPrefix = "expected/"

// Workspace is an in-memory set of projects sharing one FileSet.
type Workspace struct {
	FileSet  *source.FileSet
	Projects []*Project
	expected map[string]string
}

// Project groups documents analysed together.
type Project struct {
	Name      string
	Documents []*Document
	ws        *Workspace
}

// Document is one source file of a project with its parsed markup.
type Document struct {
	ID          source.FileID
	Name        string
	Project     *Project
	selection   *source.Span
	annotations []annotatedSpan
}

type annotatedSpan struct {
	label string
	span  source.Span
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{
		FileSet:  source.NewFileSet(),
		expected: make(map[string]string),
	}
}

// FromMarkup builds a single-document workspace.
func FromMarkup(name, text string) (*Workspace, *Document, error) {
	ws := New()
	doc, err := ws.AddProject(DefaultProject).AddDocument(name, text)
	if err != nil {
		return nil, nil, err
	}
	return ws, doc, nil
}

// FromArchive builds a single-project workspace from a txtar archive. Entries
// under expected/ are not documents; they hold the expected output for the
// document of the same name (see Expected). Expected text is NFC-normalised
// like document text.
func FromArchive(ar *txtar.Archive) (*Workspace, error) {
	ws := New()
	p := ws.AddProject(DefaultProject)
	for _, f := range ar.Files {
		if name, ok := strings.CutPrefix(f.Name, expectedPrefix); ok {
			ws.expected[name] = Normalize(string(f.Data))
			continue
		}
		if _, err := p.AddDocument(f.Name, string(f.Data)); err != nil {
			return nil, err
		}
	}
	if len(p.Documents) == 0 {
		return nil, fmt.Errorf("workspace: archive has no documents")
	}
	return ws, nil
}

// ParseArchive parses txtar data and builds a workspace from it.
func ParseArchive(data []byte) (*Workspace, error) {
	return FromArchive(txtar.Parse(data))
}

// LoadArchive reads a txtar file from disk.
func LoadArchive(path string) (*Workspace, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ws, err := ParseArchive(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

// AddProject appends an empty project.
func (w *Workspace) AddProject(name string) *Project {
	p := &Project{Name: name, ws: w}
	w.Projects = append(w.Projects, p)
	return p
}

// Documents returns every document of every project, in insertion order.
func (w *Workspace) Documents() []*Document {
	var out []*Document
	for _, p := range w.Projects {
		out = append(out, p.Documents...)
	}
	return out
}

// Document finds the document backed by the given file.
func (w *Workspace) Document(id source.FileID) *Document {
	for _, p := range w.Projects {
		if d := p.Document(id); d != nil {
			return d
		}
	}
	return nil
}

// Expected returns the expected output recorded for a document name.
func (w *Workspace) Expected(name string) (string, bool) {
	text, ok := w.expected[name]
	return text, ok
}

// Workspace returns the owning workspace.
func (p *Project) Workspace() *Workspace {
	return p.ws
}

// AddDocument parses markup and registers the markup-free text as a document.
func (p *Project) AddDocument(name, markupText string) (*Document, error) {
	m, err := ParseMarkup(markupText)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	id := p.ws.FileSet.AddVirtual(name, []byte(m.Text))
	doc := &Document{ID: id, Name: p.ws.FileSet.Get(id).Path, Project: p}
	if m.Selection != nil {
		sp, err := toSpan(id, *m.Selection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc.selection = &sp
	}
	for _, a := range m.Annotations {
		sp, err := toSpan(id, a.Range)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc.annotations = append(doc.annotations, annotatedSpan{label: a.Label, span: sp})
	}
	p.Documents = append(p.Documents, doc)
	return doc, nil
}

// Document returns the project document backed by id, or nil.
func (p *Project) Document(id source.FileID) *Document {
	for _, d := range p.Documents {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// File returns the source file of the document.
func (d *Document) File() *source.File {
	return d.Project.ws.FileSet.Get(d.ID)
}

// Text returns the markup-free document text.
func (d *Document) Text() string {
	return string(d.File().Content)
}

// FullSpan covers the whole document.
func (d *Document) FullSpan() source.Span {
	n, err := safecast.Conv[uint32](len(d.File().Content))
	if err != nil {
		panic(fmt.Errorf("document length overflow: %w", err))
	}
	return source.Span{File: d.ID, Start: 0, End: n}
}

func toSpan(id source.FileID, r Range) (source.Span, error) {
	start, err := safecast.Conv[uint32](r.Start)
	if err != nil {
		return source.Span{}, err
	}
	end, err := safecast.Conv[uint32](r.End)
	if err != nil {
		return source.Span{}, err
	}
	return source.Span{File: id, Start: start, End: end}, nil
}
