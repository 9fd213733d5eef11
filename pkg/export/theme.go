package export

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-pagefill/pkg/render/template"
)

// ThemeTokens merges the manifest tokens of a selection with the tokens of
// its variant; variant values win.
func ThemeTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	out := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if selection.Variant != "" {
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				out[key] = value
			}
		}
	}
	return out
}

// CSSVars turns tokens into custom property names ("brand" -> "--brand").
// Keys that are blank after trimming are dropped.
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := cssIdent(key)
		if name == "" {
			continue
		}
		out["--"+name] = value
	}
	return out
}

// ThemeStylesheet renders a :root block declaring vars, or "" when there
// is nothing to declare.
func ThemeStylesheet(engine template.TemplateRenderer, vars map[string]string) (string, error) {
	if len(vars) == 0 {
		return "", nil
	}
	if engine == nil {
		var err error
		engine, err = DefaultEngine()
		if err != nil {
			return "", err
		}
	}
	data := make(map[string]any, len(vars))
	for key, value := range vars {
		data[key] = value
	}
	out, err := engine.RenderTemplate("theme", map[string]any{"vars": data})
	if err != nil {
		return "", fmt.Errorf("export: render theme stylesheet: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

func cssIdent(key string) string {
	key = strings.TrimPrefix(strings.TrimSpace(key), "--")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == '.' || r == ' ' || r == '/':
			return '-'
		}
		return -1
	}, key)
}
