package config

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncoding names the pass-through UTF-8 decoder.
const DefaultEncoding = "UTF-8"

// FindEncoding resolves a text encoding by name.
// UTF-8 (and an empty name) maps to a nil encoding, which readers treat as pass-through.
func FindEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF-8", "UTF8":
		return nil, nil
	}
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if strings.EqualFold(cm.String(), name) {
				return cm, nil
			}
		}
	}
	return nil, errors.Errorf("Failed to find encoding %q", name)
}

func ListEncodings() []string {
	list := []string{DefaultEncoding}
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			list = append(list, cm.String())
		}
	}
	return list
}
