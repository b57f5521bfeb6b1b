package w3x

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var pivotLineRegexp = regexp.MustCompile(`^\s*<Pivot Name=`)

// AnnotatePivotIndexes copies r to w, appending " <!-- N -->" to every
// line that opens a Pivot element. Line count is preserved.
func AnnotatePivotIndexes(r io.Reader, w io.Writer) (int, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	counter := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) != 0 {
			if pivotLineRegexp.MatchString(line) {
				body := strings.TrimRight(line, "\r\n")
				ending := line[len(body):]
				line = fmt.Sprintf("%s <!-- %d -->%s", body, counter, ending)
				counter++
			}
			if _, werr := bw.WriteString(line); werr != nil {
				return counter, errors.Wrapf(werr, "Failed to write")
			}
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return counter, errors.Wrapf(err, "Failed to read")
		}
	}
	return counter, bw.Flush()
}

// AnnotateFile rewrites path in place with pivot index comments.
func AnnotateFile(path string) (int, error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to open %q", path)
	}
	defer in.Close()

	tmp, err := ioutil.TempFile(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to create temp file for %q", path)
	}
	defer os.Remove(tmp.Name())

	if fi, err := in.Stat(); err == nil {
		tmp.Chmod(fi.Mode())
	}

	count, err := AnnotatePivotIndexes(in, tmp)
	if err != nil {
		tmp.Close()
		return 0, errors.Wrapf(err, "Failed to annotate %q", path)
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrapf(err, "Failed to close temp file for %q", path)
	}
	in.Close()

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, errors.Wrapf(err, "Failed to replace %q", path)
	}
	return count, nil
}
