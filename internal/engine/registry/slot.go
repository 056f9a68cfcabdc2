package registry

import "go.trai.ch/loom/internal/core/domain"

// slot is one side of a fragment: a base source plus literal documents merged after
// a remote base has been fetched.
type slot struct {
	base    domain.Source
	overlay domain.Document
}

func (s slot) isZero() bool {
	return s.base.IsZero()
}

// set applies a source to the slot following merge-or-replace rules.
// A remote source always replaces. A literal merged onto a remote base becomes an overlay.
func (s *slot) set(src domain.Source, merge bool) {
	switch {
	case src.Kind() == domain.SourceRemote:
		*s = slot{base: src}
	case !merge || s.base.IsZero():
		*s = slot{base: domain.Literal(domain.Clone(src.Document()))}
	case s.base.Kind() == domain.SourceRemote:
		s.overlay = domain.Merge(s.overlay, domain.Clone(src.Document()))
	default:
		domain.Merge(s.base.Document(), domain.Clone(src.Document()))
	}
}

// setID forces the id key on whatever literal document the slot holds.
func (s *slot) setID(id string) {
	switch s.base.Kind() {
	case domain.SourceLiteral:
		s.base.Document()["id"] = id
	case domain.SourceRemote:
		if s.overlay != nil {
			s.overlay["id"] = id
		}
	}
}

func (s slot) clone() slot {
	return slot{base: s.base.Clone(), overlay: domain.Clone(s.overlay)}
}

type entry struct {
	definition    slot
	configuration slot
}

func (e *entry) clone() entry {
	return entry{definition: e.definition.clone(), configuration: e.configuration.clone()}
}
