package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore сохраняет загруженные файлы и возвращает относительный путь,
// под которым файл доступен через статическую раздачу.
type FileStore interface {
	Save(file *multipart.FileHeader, kind string) (string, error)
	Remove(relPath string) error
}

// Compile-time check
var _ FileStore = (*DiskStore)(nil)

// DiskStore хранит файлы на локальном диске под baseDir.
// Файлы раскладываются по подкаталогам kind (например "image", "audio")
// и получают случайное UUID-имя с исходным расширением.
type DiskStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewDiskStore creates a DiskStore rooted at baseDir.
func NewDiskStore(baseDir string, logger *zap.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", baseDir, err)
	}
	return &DiskStore{
		baseDir: baseDir,
		logger:  logger.Named("DiskStore"),
	}, nil
}

// Save writes the uploaded file under baseDir/kind/ and returns the
// relative path "kind/{uuid}{ext}".
func (s *DiskStore) Save(file *multipart.FileHeader, kind string) (string, error) {
	dir := filepath.Join(s.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("Failed to create kind directory", zap.Error(err), zap.String("dir", dir))
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	ext := filepath.Ext(file.Filename)
	name := uuid.NewString() + ext
	relPath := filepath.ToSlash(filepath.Join(kind, name))
	dstPath := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err), zap.String("filename", file.Filename))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.Error(err), zap.String("path", dstPath))
		return "", fmt.Errorf("failed to create file %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Убираем частично записанный файл
		_ = os.Remove(dstPath)
		s.logger.Error("Failed to write uploaded file", zap.Error(err), zap.String("path", dstPath))
		return "", fmt.Errorf("failed to write file %s: %w", dstPath, err)
	}

	s.logger.Debug("File saved",
		zap.String("original", file.Filename),
		zap.String("path", relPath),
		zap.Int64("size", file.Size),
	)
	return relPath, nil
}

// Remove deletes a previously saved file. Removing a file that is
// already gone is not an error.
func (s *DiskStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(relPath))
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Attempted to remove non-existent file", zap.String("path", relPath))
			return nil
		}
		s.logger.Error("Failed to remove file", zap.Error(err), zap.String("path", relPath))
		return fmt.Errorf("failed to remove file %s: %w", relPath, err)
	}
	return nil
}
