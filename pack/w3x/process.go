package w3x

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"

	"github.com/mogaika/w3x_skeleton_browser/utils"
)

type Options struct {
	// nil means UTF-8
	Encoding encoding.Encoding
	Reporter Reporter
	RootName string
}

// ProcessBlock builds and resolves an already extracted hierarchy block.
func ProcessBlock(block string, opts Options) (*Hierarchy, error) {
	h, err := BuildHierarchy(block, opts.RootName, opts.Reporter)
	if err != nil {
		return nil, err
	}
	if err := Resolve(h, opts.Reporter); err != nil {
		return nil, err
	}
	return h, nil
}

// ProcessData runs the whole pipeline over document bytes.
func ProcessData(data []byte, opts Options) (*Hierarchy, error) {
	text, err := utils.DecodeText(data, opts.Encoding)
	if err != nil {
		return nil, err
	}
	block, err := ExtractHierarchy(text)
	if err != nil {
		return nil, err
	}
	return ProcessBlock(block, opts)
}

// ProcessFile runs the whole pipeline over a document on disk.
func ProcessFile(path string, opts Options) (*Hierarchy, error) {
	block, err := ReadHierarchy(path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	h, err := ProcessBlock(block, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "In %q", path)
	}
	return h, nil
}

// Convert processes path and writes the ini export next to it.
func Convert(path string, opts Options, suffix string) (*Hierarchy, string, error) {
	h, err := ProcessFile(path, opts)
	if err != nil {
		return nil, "", err
	}
	out, err := ExportINI(h, path, suffix)
	if err != nil {
		return h, "", err
	}
	reportf(opts.Reporter, Info, "", "INI file exported to: %s", out)
	return h, out, nil
}
