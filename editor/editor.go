package editor

import (
	"sync"

	"github.com/eringen/pubdesk/markdown"
)

// Editor is the state of one mounted post form. The stored content is run
// through the normalizer at most once; everything after that is edited
// HTML and is kept as is.
type Editor struct {
	mu     sync.Mutex
	shape  Shape
	form   PostForm
	seeded bool
}

// New reconciles src into a form and returns an editor for it.
func New(src PostSource) *Editor {
	form := FormDefaults(src)
	if form.Slug == "" {
		form.Slug = Slugify(form.Title)
	}
	return &Editor{shape: src.Shape, form: form}
}

// IsNew reports whether the editor is creating a post.
func (e *Editor) IsNew() bool { return e.shape == ShapeNone }

// Form returns a copy of the current form state.
func (e *Editor) Form() PostForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.form
	f.Tags = cloneStrings(e.form.Tags)
	f.MetaKeywords = cloneStrings(e.form.MetaKeywords)
	return f
}

// InitialContent returns the HTML that seeds the editing surface. The
// first call normalizes the stored content; later calls return the
// current content untouched.
func (e *Editor) InitialContent() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.seeded {
		e.form.Content = markdown.Normalize(e.form.Content)
		e.seeded = true
	}
	return e.form.Content
}

// SetContent records edited HTML. It also closes the one-shot seed so a
// late InitialContent call cannot re-normalize the edit.
func (e *Editor) SetContent(html string) {
	e.mu.Lock()
	e.form.Content = html
	e.seeded = true
	e.mu.Unlock()
}

// SetTitle updates the title and the slug derived from it.
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	e.form.Title = title
	e.form.Slug = Slugify(title)
	e.mu.Unlock()
}

// Guard refuses a second submission for a key while one is in flight.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// TryAcquire marks key as in flight. It returns false if it already was.
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[key]; busy {
		return false
	}
	g.inflight[key] = struct{}{}
	return true
}

// Release clears the in-flight mark for key.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
}
