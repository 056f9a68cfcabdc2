package domain

// SourceKind tells whether a Source holds an inline document or a remote location.
type SourceKind int

const (
	// SourceNone marks an empty slot.
	SourceNone SourceKind = iota
	// SourceLiteral marks an inline document.
	SourceLiteral
	// SourceRemote marks a path that is fetched and decoded at resolution time.
	SourceRemote
)

// Source is either an inline Document or the location of a remote document.
// The zero value is an empty source.
type Source struct {
	kind SourceKind
	doc  Document
	path string
}

// Literal wraps an inline document.
func Literal(doc Document) Source {
	if doc == nil {
		doc = Document{}
	}
	return Source{kind: SourceLiteral, doc: doc}
}

// Remote wraps the location of a document that is resolved lazily.
func Remote(path string) Source {
	return Source{kind: SourceRemote, path: path}
}

// Kind returns the variant held by the source.
func (s Source) Kind() SourceKind {
	return s.kind
}

// IsZero reports whether the source is empty.
func (s Source) IsZero() bool {
	return s.kind == SourceNone
}

// Document returns the inline document. It is nil for remote and empty sources.
func (s Source) Document() Document {
	return s.doc
}

// Path returns the remote location. It is empty for literal and empty sources.
func (s Source) Path() string {
	return s.path
}

// Clone returns a copy of s that does not share nested state with it.
func (s Source) Clone() Source {
	if s.kind == SourceLiteral {
		return Source{kind: SourceLiteral, doc: Clone(s.doc)}
	}
	return s
}
