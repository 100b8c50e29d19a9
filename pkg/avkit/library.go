package avkit

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the filesystem collaborator: it copies a recording URI into
// app-managed storage and deletes by URI. The SDK delegates both verbatim.
type Storage interface {
	Copy(ctx context.Context, srcURI, dstPath string) error
	Remove(ctx context.Context, uri string) error
}

// OSStorage is the default Storage backed by the local filesystem.
// "file://" prefixes on URIs are accepted and stripped.
type OSStorage struct{}

func (OSStorage) Copy(ctx context.Context, srcURI, dstPath string) error {
	src, err := os.Open(stripFileScheme(srcURI))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (OSStorage) Remove(ctx context.Context, uri string) error {
	return os.Remove(stripFileScheme(uri))
}

func stripFileScheme(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// Library manages saved recordings inside one app-managed directory.
type Library struct {
	dir     string
	storage Storage
	logger  *Logger
}

// NewLibrary creates a library rooted at dir, creating it if needed. A nil
// storage gets the OS-backed default.
func NewLibrary(dir string, storage Storage) (*Library, error) {
	if storage == nil {
		storage = OSStorage{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, WrapError(err, ErrCodeUnknown)
	}
	return &Library{
		dir:     dir,
		storage: storage,
		logger:  GetGlobalLogger().WithComponent("Library"),
	}, nil
}

// Dir returns the managed directory.
func (l *Library) Dir() string {
	return l.dir
}

// SaveRecording copies the recording at uri into the managed directory
// under the given filename (a timestamped name is generated when empty) and
// returns the destination path.
func (l *Library) SaveRecording(ctx context.Context, uri, filename string) (string, error) {
	if uri == "" {
		return "", NewInvalidURIError(uri)
	}
	if filename == "" {
		ext := filepath.Ext(stripFileScheme(uri))
		filename = DefaultFilename(ext)
	}
	dst := filepath.Join(l.dir, filename)
	if err := l.storage.Copy(ctx, uri, dst); err != nil {
		return "", WrapError(err, ErrCodeUnknown).AddDetail("uri", uri)
	}
	l.logger.WithField("path", dst).Debug("recording saved")
	return dst, nil
}

// DeleteRecording removes the file at uri.
func (l *Library) DeleteRecording(ctx context.Context, uri string) error {
	if uri == "" {
		return NewInvalidURIError(uri)
	}
	if err := l.storage.Remove(ctx, uri); err != nil {
		return WrapError(err, ErrCodeUnknown).AddDetail("uri", uri)
	}
	return nil
}
