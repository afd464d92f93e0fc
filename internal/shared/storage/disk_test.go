package storage

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
	"go.uber.org/zap"
)

// uploadedFile собирает multipart-запрос и возвращает заголовок файла так,
// как его видит обработчик.
func uploadedFile(t *testing.T, fieldName, fileName, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File[fieldName]
	require.Len(t, files, 1)
	return files[0]
}

func TestDiskStoreSaveAndRemove(t *testing.T) {
	baseDir := t.TempDir()
	store, err := NewDiskStore(baseDir, zap.NewNop())
	require.NoError(t, err)

	header := uploadedFile(t, "img", "photo.jpg", "fake image bytes")

	// 1. Сохранение
	relPath, err := store.Save(header, "image")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "image/"), "path should start with the kind directory, got %q", relPath)
	assert.True(t, strings.HasSuffix(relPath, ".jpg"), "original extension should be preserved, got %q", relPath)
	// Имя файла случайное, исходное имя не используется
	assert.NotContains(t, relPath, "photo")

	content, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(relPath)))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(content))

	// 2. Повторное сохранение того же файла дает другой путь
	secondPath, err := store.Save(header, "image")
	require.NoError(t, err)
	assert.NotEqual(t, relPath, secondPath)

	// 3. Удаление
	require.NoError(t, store.Remove(relPath))
	_, err = os.Stat(filepath.Join(baseDir, filepath.FromSlash(relPath)))
	assert.True(t, os.IsNotExist(err), "file should be gone after Remove")

	// 4. Повторное удаление - не ошибка
	require.NoError(t, store.Remove(relPath))

	// 5. Пустой путь игнорируется
	require.NoError(t, store.Remove(""))
}

func TestDiskStoreFileWithoutExtension(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	header := uploadedFile(t, "audiofile", "rawtrack", "audio payload")

	relPath, err := store.Save(header, "audio")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "audio/"))
	assert.False(t, strings.Contains(filepath.Base(relPath), "."), "no extension expected, got %q", relPath)
}
