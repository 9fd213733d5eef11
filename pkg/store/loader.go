package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and loads every JSON/YAML template file into a new
// Memory store. A file holds either one template or a `templates` list.
// When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS, options ...MemoryOption) (*Memory, error) {
	mem := NewMemory(options...)
	if fsys == nil {
		return mem, nil
	}

	seenIDs := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("store: read %s: %w", path, err)
		}

		templates, err := parseTemplateFile(data, path)
		if err != nil {
			return err
		}

		for idx, tpl := range templates {
			tpl.normalise()
			if tpl.Slug == "" {
				return fmt.Errorf("store: file %s template %d has no slug", path, idx)
			}
			if strings.TrimSpace(tpl.HTML) == "" {
				return fmt.Errorf("store: file %s template %q has no html", path, tpl.Slug)
			}
			if tpl.ID != "" {
				if other, dup := seenIDs[tpl.ID]; dup {
					return fmt.Errorf("%w: id %q in %s and %s", ErrDuplicate, tpl.ID, other, path)
				}
				seenIDs[tpl.ID] = path
			}
			if _, err := mem.Get(context.Background(), Ref{Slug: tpl.Slug}); err == nil {
				return fmt.Errorf("%w: slug %q (file %s)", ErrDuplicate, tpl.Slug, path)
			}
			if _, err := mem.Put(context.Background(), tpl); err != nil {
				return fmt.Errorf("store: file %s: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mem, nil
}

type templateFile struct {
	Template  `yaml:",inline"`
	Templates []Template `json:"templates" yaml:"templates"`
}

func parseTemplateFile(data []byte, source string) ([]Template, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("store: file %s is empty", source)
	}

	var doc templateFile
	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", source, err)
	}

	if len(doc.Templates) > 0 {
		return doc.Templates, nil
	}
	return []Template{doc.Template}, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
