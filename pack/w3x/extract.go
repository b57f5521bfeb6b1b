package w3x

import (
	"encoding/xml"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"

	"github.com/mogaika/w3x_skeleton_browser/utils"
)

const (
	HierarchyOpenTag  = "<W3DHierarchy"
	HierarchyCloseTag = "</W3DHierarchy>"
)

var ErrHierarchyNotFound = errors.New("W3DHierarchy not found")

// ExtractHierarchy cuts the W3DHierarchy block out of a whole document.
// The rest of the document is never parsed, so it may be malformed.
func ExtractHierarchy(text string) (string, error) {
	start := strings.Index(text, HierarchyOpenTag)
	if start == -1 {
		return "", errors.Wrapf(ErrHierarchyNotFound, "%s tag missing", HierarchyOpenTag)
	}
	end := strings.Index(text[start:], HierarchyCloseTag)
	if end == -1 {
		return "", errors.Wrapf(ErrHierarchyNotFound, "%s tag missing", HierarchyCloseTag)
	}
	return text[start : start+end+len(HierarchyCloseTag)], nil
}

// ReadHierarchy loads a document from disk and extracts its hierarchy block.
func ReadHierarchy(path string, enc encoding.Encoding) (string, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to read %q", path)
	}
	text, err := utils.DecodeText(raw, enc)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to decode %q", path)
	}
	block, err := ExtractHierarchy(text)
	if err != nil {
		return "", errors.Wrapf(err, "In %q", path)
	}
	return block, nil
}

// CountPivots reports how many Pivot elements a block holds,
// well-formed or not, without building the graph.
func CountPivots(block string) (int, error) {
	var h xmlHierarchy
	if err := xml.Unmarshal([]byte(block), &h); err != nil {
		return 0, errors.Wrapf(err, "Failed to parse W3DHierarchy")
	}
	return len(h.Pivots), nil
}
