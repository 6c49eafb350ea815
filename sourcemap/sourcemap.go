// Package sourcemap assigns a stable identifier to each parsed source and
// keeps the original text around so diagnostics can slice byte spans out of
// it later (C1 of the design).
package sourcemap

import "github.com/google/uuid"

// ID identifies one source text within a Map.
type ID string

// Source pairs a stable ID with the original text it was assigned to.
type Source struct {
	ID   ID
	Text string
}

// Slice returns text[start:end], clamped to the source's bounds.
func (s Source) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.Text) {
		end = len(s.Text)
	}
	if start > end {
		return ""
	}
	return s.Text[start:end]
}

// Map tracks every source registered during a process's lifetime.
type Map struct {
	sources map[ID]Source
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{sources: make(map[ID]Source)}
}

// Register assigns a new random ID to text and records it. Use RegisterID
// when the caller already has a stable identifier (e.g. a file path) it
// wants to reuse across parses.
func (m *Map) Register(text string) Source {
	return m.RegisterID(ID(uuid.NewString()), text)
}

// RegisterID records text under the given ID, overwriting any prior entry.
func (m *Map) RegisterID(id ID, text string) Source {
	src := Source{ID: id, Text: text}
	m.sources[id] = src
	return src
}

// Lookup returns the source registered under id, if any.
func (m *Map) Lookup(id ID) (Source, bool) {
	src, ok := m.sources[id]
	return src, ok
}
