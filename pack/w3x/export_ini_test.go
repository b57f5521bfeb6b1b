package w3x

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *Hierarchy {
	t.Helper()
	h, err := ProcessFile(filepath.Join("testdata", "sample.w3x"), Options{})
	require.NoError(t, err)
	return h
}

func TestWriteINIGolden(t *testing.T) {
	h := loadSample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteINI(&buf, h))

	g := goldie.New(t)
	g.Assert(t, "sample_ini", buf.Bytes())
}

func TestWriteINIUnresolved(t *testing.T) {
	h, err := BuildHierarchy(buildBlock("SKL", rootPivot()), "", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, WriteINI(&buf, h))
	assert.Zero(t, buf.Len())
}

// parseINI reads the blocks back as name -> key -> value.
func parseINI(t *testing.T, data []byte) (sections []string, values map[string]map[string]string) {
	values = make(map[string]map[string]string)
	var current string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			current = line[1 : len(line)-1]
			sections = append(sections, current)
			values[current] = make(map[string]string)
		default:
			kv := strings.SplitN(line, "=", 2)
			require.Len(t, kv, 2, "line %q", line)
			values[current][kv[0]] = kv[1]
		}
	}
	require.NoError(t, scanner.Err())
	return sections, values
}

func parseFloats(t *testing.T, s string) []float64 {
	parts := strings.Split(s, ",")
	result := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		require.NoError(t, err)
		result[i] = v
	}
	return result
}

func TestWriteINIRoundTripsNumbers(t *testing.T) {
	h := buildResolved(t, nil,
		testPivot{name: DefaultRootName, parent: "-1", t: "0.1 -1e-7 123456.789", r: "0 0 0.7071067811865476 0.7071067811865476"},
		testPivot{name: "BONE01", parent: "0", t: "0.3 0.2 0.1", r: "0.1 0.2 0.3 0.9273618495495703"},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteINI(&buf, h))

	sections, values := parseINI(t, buf.Bytes())
	assert.Equal(t, []string{"Pivot0", "Pivot1"}, sections)

	for i := range h.Pivots {
		p := &h.Pivots[i]
		v := values["Pivot"+strconv.Itoa(i)]
		assert.Equal(t, strconv.Itoa(p.Index), v["Index"])
		assert.Equal(t, p.Name, v["Name"])
		assert.Equal(t, strconv.Itoa(p.ParentIndex), v["ParentIndex"])
		assert.Equal(t, p.ParentName, v["ParentName"])

		wp := parseFloats(t, v["WorldPosition"])
		assert.Equal(t, []float64{p.WorldPosition[0], p.WorldPosition[1], p.WorldPosition[2]}, wp)
		wq := parseFloats(t, v["WorldQuaternion"])
		assert.Equal(t, []float64{p.WorldQuaternion.V[0], p.WorldQuaternion.V[1], p.WorldQuaternion.V[2], p.WorldQuaternion.W}, wq)
		lr := parseFloats(t, v["LocalRotation"])
		assert.Equal(t, []float64{p.LocalRotation.V[0], p.LocalRotation.V[1], p.LocalRotation.V[2], p.LocalRotation.W}, lr)
	}
}

func TestExportINI(t *testing.T) {
	src, err := ioutil.ReadFile(filepath.Join("testdata", "sample.w3x"))
	require.NoError(t, err)
	input := filepath.Join(t.TempDir(), "sample.w3x")
	require.NoError(t, ioutil.WriteFile(input, src, 0644))

	var diags DiagnosticList
	h, out, err := Convert(input, Options{Reporter: &diags}, "")
	require.NoError(t, err)
	assert.Equal(t, input+DefaultIniSuffix, out)
	assert.Equal(t, 3, h.Len())
	require.Equal(t, 1, diags.Count(Info))
	assert.Contains(t, diags.Items()[0].Message, out)

	data, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	golden, err := ioutil.ReadFile(filepath.Join("testdata", "sample_ini.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(data))
}

func TestExportINICustomSuffix(t *testing.T) {
	h := loadSample(t)
	input := filepath.Join(t.TempDir(), "model.w3x")

	out, err := ExportINI(h, input, ".bones.ini")
	require.NoError(t, err)
	assert.Equal(t, input+".bones.ini", out)
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestExportINIUnresolved(t *testing.T) {
	h, err := BuildHierarchy(buildBlock("SKL", rootPivot()), "", nil)
	require.NoError(t, err)
	input := filepath.Join(t.TempDir(), "model.w3x")

	_, err = ExportINI(h, input, "")
	assert.Error(t, err)
	_, err = os.Stat(IniPath(input, ""))
	assert.True(t, os.IsNotExist(err))
}

func TestExportINIBadDirectory(t *testing.T) {
	h := loadSample(t)
	_, err := ExportINI(h, filepath.Join(t.TempDir(), "missing", "model.w3x"), "")
	assert.Error(t, err)
}
