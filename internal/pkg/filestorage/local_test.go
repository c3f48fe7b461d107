package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	url, err := ls.SaveFileWithPath(fileHeader(t, "Photo.PNG", "png-bytes"), "leaders")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/leaders/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	stored := filepath.Join(dir, "leaders", filepath.Base(url))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.DeleteFile(url))
	assert.Error(t, ls.DeleteFile("/elsewhere/file.png"))
}

func TestSubPathCannotEscapeRoot(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	url, err := ls.SaveFileWithPath(fileHeader(t, "a.txt", "x"), "../../etc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/etc/"), url)
	_, err = os.Stat(filepath.Join(dir, "etc", filepath.Base(url)))
	assert.NoError(t, err)
}

func TestNilUpload(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	url, err := ls.SaveFileWithPath(nil, "x")
	require.NoError(t, err)
	assert.Empty(t, url)
}
