package w3x

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/w3x_skeleton_browser/utils"
)

const DefaultIniSuffix = ".SKL.ini"

func IniPath(inputPath string, suffix string) string {
	if suffix == "" {
		suffix = DefaultIniSuffix
	}
	return inputPath + suffix
}

func formatFloats(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func formatVec(v mgl64.Vec3) string {
	return formatFloats(v[0], v[1], v[2])
}

func formatQuat(q mgl64.Quat) string {
	xyzw := utils.QuatToXYZW(q)
	return formatFloats(xyzw[:]...)
}

// WriteINI writes one [PivotN] block per pivot.
func WriteINI(w io.Writer, h *Hierarchy) error {
	if !h.IsResolved() {
		return errors.Errorf("Hierarchy %q is not resolved", h.Id)
	}

	bw := bufio.NewWriter(w)
	for i := range h.Pivots {
		p := &h.Pivots[i]
		fmt.Fprintf(bw, "[Pivot%d]\n", p.Index)
		fmt.Fprintf(bw, "Index=%d\n", p.Index)
		fmt.Fprintf(bw, "Name=%s\n", p.Name)
		fmt.Fprintf(bw, "ParentIndex=%d\n", p.ParentIndex)
		fmt.Fprintf(bw, "ParentName=%s\n", p.ParentName)
		fmt.Fprintf(bw, "LocalTranslation=%s\n", formatVec(p.LocalTranslation))
		fmt.Fprintf(bw, "LocalRotation=%s\n", formatQuat(p.LocalRotation))
		fmt.Fprintf(bw, "WorldPosition=%s\n", formatVec(p.WorldPosition))
		fmt.Fprintf(bw, "WorldQuaternion=%s\n\n", formatQuat(p.WorldQuaternion))
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "Failed to write ini")
	}
	return nil
}

// ExportINI writes the ini next to inputPath and returns its path.
// A partially written file is removed on failure.
func ExportINI(h *Hierarchy, inputPath string, suffix string) (string, error) {
	outPath := IniPath(inputPath, suffix)
	if !h.IsResolved() {
		return "", errors.Errorf("Hierarchy %q is not resolved", h.Id)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to create %q", outPath)
	}

	if err := WriteINI(f, h); err != nil {
		f.Close()
		os.Remove(outPath)
		return "", errors.Wrapf(err, "Failed to export %q", outPath)
	}
	if err := f.Close(); err != nil {
		os.Remove(outPath)
		return "", errors.Wrapf(err, "Failed to close %q", outPath)
	}
	return outPath, nil
}
