package export

// Result is the output of one export.
type Result struct {
	Format      Format
	ContentType string
	// HTML holds one rendered (or inlined) document per value set, in input
	// order. Empty for pdf.
	HTML []string
	// CSS is the stylesheet the documents were rendered with. Empty for the
	// inline formats, whose styles live in the markup.
	CSS string
	// Batch mirrors Values.Batch of the request.
	Batch bool
	// PDF holds the document bytes for the pdf format.
	PDF []byte
	// Filename is a suggested download name.
	Filename string
}

// IsBinary reports whether the result carries bytes rather than markup.
func (r Result) IsBinary() bool {
	return r.PDF != nil
}

// Body returns the JSON-serialisable response for markup formats.
//
// html always returns {"html": [...], "css": "..."}. The inline formats
// return {"html": "..."} for a single value set and {"html": [...]} for a
// batch, so clients must branch on the shape of what they sent.
func (r Result) Body() map[string]any {
	switch r.Format {
	case FormatInlineHTML, FormatEmail:
		if !r.Batch && len(r.HTML) == 1 {
			return map[string]any{"html": r.HTML[0]}
		}
		return map[string]any{"html": nonNil(r.HTML)}
	default:
		return map[string]any{"html": nonNil(r.HTML), "css": r.CSS}
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
