package util

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/mailio/go-campaign-console/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCSVFile(t *testing.T) {
	assert.True(t, IsCSVFile("receivers.CSV"))
	assert.True(t, IsCSVFile("/tmp/list.txt"))
	assert.False(t, IsCSVFile("list.xlsx"))
	assert.False(t, IsCSVFile("csv"))
}

func TestReadFileBase64(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receivers.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,email\nAnn,ann@acme.com\n"), 0600))

	encoded, err := ReadFileBase64(path)
	require.NoError(t, err)
	decoded, _ := base64.StdEncoding.DecodeString(encoded)
	assert.Equal(t, "name,email\nAnn,ann@acme.com\n", string(decoded))

	_, err = ReadFileBase64("")
	assert.ErrorIs(t, err, types.ErrMissingCSV)

	_, err = ReadFileBase64(filepath.Join(dir, "x.pdf"))
	assert.ErrorIs(t, err, types.ErrInvalidFileType)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = ReadFileBase64(empty)
	assert.ErrorIs(t, err, types.ErrEmptyFile)
}

func TestDecodeBase64(t *testing.T) {
	data, err := DecodeBase64("data:text/csv;base64," + base64.StdEncoding.EncodeToString([]byte("a,b")))
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(data))

	data, err = DecodeBase64("YWI") // "ab" without padding
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
}

func TestWriteBase64File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	n, err := WriteBase64File(base64.StdEncoding.EncodeToString([]byte("email\nx@y.com\n")), path)
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "email\nx@y.com\n", string(content))

	_, err = WriteBase64File("%%%", path)
	assert.Error(t, err)
}
