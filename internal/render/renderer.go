// Package render turns invoice documents into printable artifacts.
package render

import (
	"fmt"

	"github.com/sangkips/reservation-invoicing/internal/invoice"
)

// Format identifies an artifact type
type Format string

const (
	FormatESCPOS Format = "escpos"
	FormatXLSX   Format = "xlsx"
)

// Artifact is a rendered invoice
type Artifact struct {
	Format      Format
	ContentType string
	FileName    string
	Data        []byte
}

// Renderer lays out any invoice document, whatever the reservation kind.
type Renderer interface {
	Format() Format
	Render(doc *invoice.Document) (*Artifact, error)
}

// Set holds one renderer per format
type Set map[Format]Renderer

// NewSet indexes renderers by their format
func NewSet(renderers ...Renderer) Set {
	s := make(Set, len(renderers))
	for _, r := range renderers {
		s[r.Format()] = r
	}
	return s
}

// Render renders doc in format f
func (s Set) Render(f Format, doc *invoice.Document) (*Artifact, error) {
	r, ok := s[f]
	if !ok {
		return nil, fmt.Errorf("render: no renderer for format %q", f)
	}
	return r.Render(doc)
}
