package pagefill

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-pagefill/pkg/store"
)

//go:embed samples/*.yaml samples/*.json
var embeddedSamples embed.FS

// SamplesFS exposes the bundled sample templates (an invoice and a welcome
// email) so binaries can serve something without a templates directory.
//
// Typical use:
//
//	templates, err := pagefill.LoadTemplates(pagefill.SamplesFS())
func SamplesFS() fs.FS {
	sub, err := fs.Sub(embeddedSamples, "samples")
	if err != nil {
		return embeddedSamples
	}
	return sub
}

// LoadTemplates reads every template file under fsys into a memory store.
func LoadTemplates(fsys fs.FS, options ...store.MemoryOption) (*store.Memory, error) {
	return store.LoadFS(fsys, options...)
}
