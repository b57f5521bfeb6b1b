package utils

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// DecodeText converts raw document bytes to a string.
// nil encoding means the data is already UTF-8.
func DecodeText(bs []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		return string(bytes.TrimPrefix(bs, utf8BOM)), nil
	}

	s, _, err := transform.Bytes(enc.NewDecoder(), bs)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to decode text")
	}
	return string(bytes.TrimPrefix(s, utf8BOM)), nil
}
