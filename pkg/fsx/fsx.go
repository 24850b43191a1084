package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned when a path has no stored object
var ErrNotExist = errors.New("fsx: file does not exist")

// FileReader reads stored objects
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter stores and removes objects
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is a blob store addressed by slash-separated paths
type FileSystem interface {
	FileReader
	FileWriter
	Join(elem ...string) string
}
