package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps language -> flattened key -> message.
type Catalog map[string]map[string]string

// ParseYAML reads one YAML document into a Catalog.
func ParseYAML(data []byte) (Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	cat := make(Catalog, len(raw))
	for lang, v := range raw {
		tree, ok := v.(map[string]any)
		if !ok || lang == "" {
			return nil, fmt.Errorf("%w: language %q must map to keys, got %T", ErrInvalidCatalog, lang, v)
		}
		msgs := make(map[string]string)
		flatten("", tree, msgs)
		cat[lang] = msgs
	}
	return cat, nil
}

// LoadFS parses every *.yaml / *.yml file in dir of fsys and merges them.
// Later files override earlier keys.
func LoadFS(fsys fs.FS, dir string) (Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	cat := Catalog{}
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		part, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		cat.Merge(part)
	}
	return cat, nil
}

// Merge copies other into c.
func (c Catalog) Merge(other Catalog) {
	for lang, msgs := range other {
		dst, ok := c[lang]
		if !ok {
			dst = make(map[string]string, len(msgs))
			c[lang] = dst
		}
		for k, v := range msgs {
			dst[k] = v
		}
	}
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
