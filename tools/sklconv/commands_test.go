package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<AssetDeclaration>
	<W3DHierarchy id="SAMPLE_SKL">
		<Pivot Name="ROOTTRANSFORM" Parent="-1">
			<Translation X="0" Y="0" Z="0"/>
			<Rotation X="0" Y="0" Z="0" W="1"/>
		</Pivot>
		<Pivot Name="BONE01" Parent="0">
			<Translation X="1" Y="0" Z="0"/>
			<Rotation X="0" Y="0" Z="1" W="0"/>
		</Pivot>
		<Pivot Name="BONE02" Parent="1">
			<Translation X="0" Y="2" Z="0"/>
			<Rotation X="0" Y="0" Z="0" W="1"/>
		</Pivot>
		<Pivot Name="LOOSE">
			<Translation X="0" Y="0" Z="0"/>
		</Pivot>
	</W3DHierarchy>
</AssetDeclaration>`

func writeSample(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "sample.w3x")
	require.NoError(t, ioutil.WriteFile(path, []byte(sampleDoc), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"convert", "inspect", "dump", "index", "gltf", "fbx", "encodings"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestConvert(t *testing.T) {
	path := writeSample(t)

	stdout, stderr, err := execute(t, "convert", "-v", path)
	require.NoError(t, err)
	assert.Equal(t, "INI file exported to: "+path+".SKL.ini\n", stdout)
	assert.Contains(t, stderr, "record-incomplete")

	data, err := ioutil.ReadFile(path + ".SKL.ini")
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Pivot2]\nIndex=2\nName=BONE02\nParentIndex=1\nParentName=BONE01\n")
	assert.Contains(t, string(data), "WorldPosition=1,-2,0\n")
}

func TestConvertPartialFailure(t *testing.T) {
	path := writeSample(t)
	missing := filepath.Join(filepath.Dir(path), "missing.w3x")

	stdout, stderr, err := execute(t, "convert", "--suffix", ".txt", missing, path)
	require.Error(t, err)
	assert.Contains(t, stderr, "missing.w3x")
	assert.Contains(t, stdout, path+".txt")
	_, err = os.Stat(path + ".txt")
	assert.NoError(t, err)
}

func TestConvertSettingsFile(t *testing.T) {
	path := writeSample(t)
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, ioutil.WriteFile(settings, []byte("output_suffix: .pivots.ini\n"), 0644))

	stdout, _, err := execute(t, "--config", settings, "convert", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path+".pivots.ini")
}

func TestEncodings(t *testing.T) {
	stdout, _, err := execute(t, "encodings")
	require.NoError(t, err)
	assert.Contains(t, stdout, "UTF-8\n")
	assert.Contains(t, stdout, "Windows 1252\n")
}

func TestBadEncoding(t *testing.T) {
	path := writeSample(t)
	_, _, err := execute(t, "--encoding", "klingon", "inspect", path)
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := writeSample(t)
	stdout, _, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `hierarchy "SAMPLE_SKL", 3 pivots (4 in document)`)
	assert.Contains(t, stdout, "0 ROOTTRANSFORM\n  1 BONE01\n    2 BONE02\n")
}

func TestDump(t *testing.T) {
	path := writeSample(t)

	stdout, _, err := execute(t, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "world_position: [1, -2, 0]")

	stdout, _, err = execute(t, "dump", "--format", "spew", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "BONE02")

	_, _, err = execute(t, "dump", "--format", "xml", path)
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	path := writeSample(t)
	stdout, _, err := execute(t, "index", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "annotated 4 pivots")

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<Pivot Name="LOOSE"> <!-- 3 -->`)
}

func TestExports(t *testing.T) {
	path := writeSample(t)
	dir := filepath.Dir(path)

	_, _, err := execute(t, "gltf", path)
	require.NoError(t, err)
	assert.FileExists(t, path+".gltf")

	glb := filepath.Join(dir, "out.glb")
	_, _, err = execute(t, "gltf", "--binary", "--proxy", "bone", "-o", glb, path)
	require.NoError(t, err)
	data, err := ioutil.ReadFile(glb)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("glTF")))

	stdout, _, err := execute(t, "fbx", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path+".fbx")
	assert.FileExists(t, path+".fbx")
}
