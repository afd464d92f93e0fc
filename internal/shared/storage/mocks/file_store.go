package mocks

import (
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

// Mock FileStore
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(file *multipart.FileHeader, kind string) (string, error) {
	args := m.Called(file, kind)
	return args.String(0), args.Error(1)
}

func (m *FileStore) Remove(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}
