package domain

// FragmentEntry is one fragment registration listed in a manifest.
type FragmentEntry struct {
	ID            string
	Definition    Source
	Configuration Source
	// Replace disables merging for both slots.
	Replace bool
}

// Manifest is the ordered list of fragments the bootstrap driver registers.
type Manifest struct {
	Fragments []FragmentEntry
}

// IDs returns the fragment identifiers in manifest order.
func (m *Manifest) IDs() []string {
	ids := make([]string, 0, len(m.Fragments))
	for _, f := range m.Fragments {
		ids = append(ids, f.ID)
	}
	return ids
}
