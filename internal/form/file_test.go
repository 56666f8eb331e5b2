package form

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	content := "name: Jo\nbio: Hi\nskills: \"a, b\"\neducation: |\n  BSc\n  MSc\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	src, err := OpenFile(path)
	require.NoError(t, err)

	snap := Read(src)
	assert.Equal(t, "Jo", snap.Name)
	assert.Equal(t, "Hi", snap.Bio)
	assert.Equal(t, "a, b", snap.Skills)
	assert.Equal(t, "BSc\nMSc\n", snap.Education)
	assert.Equal(t, path, src.Path())
}

func TestOpenFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Jo","template":"modern"}`), 0644))

	src, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jo", src.Get(FieldName))
	assert.Equal(t, "modern", src.Get(FieldTemplate))
}

func TestOpenFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	src, err := OpenFile(path)
	require.NoError(t, err)
	assert.Empty(t, src.Keys())
}

func TestFileSource_UnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Jo\nnickname: J\nage: \"40\"\nprimaryColor: \"#fff\"\n"), 0644))

	src, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "nickname"}, src.UnknownFields())
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var fileErr *FileError
	assert.ErrorAs(t, err, &fileErr)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestOpenFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":`), 0644))

	_, err := OpenFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestFileSource_ReloadReplacesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Jo\nbio: Hi\n"), 0644))

	src, err := OpenFile(path)
	require.NoError(t, err)
	src.Set(FieldSkills, "local only")

	require.NoError(t, os.WriteFile(path, []byte("name: Sam\n"), 0644))
	require.NoError(t, src.Reload())

	assert.Equal(t, "Sam", src.Get(FieldName))
	assert.Equal(t, "", src.Get(FieldBio))
	assert.Equal(t, "", src.Get(FieldSkills))
}
