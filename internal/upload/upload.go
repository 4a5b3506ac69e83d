// Package upload validates and stores profile pictures submitted at signup.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidFileType is returned for any upload whose declared type is not an image.
var ErrInvalidFileType = errors.New("Invalid file type. Only images are allowed!")

// File is a single uploaded part as received from the client.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Storage persists accepted files under a bare name.
type Storage interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) error
	Remove(ctx context.Context, name string) error
}

// Acceptor filters uploads and hands accepted files to a Storage.
type Acceptor struct {
	storage Storage
	now     func() time.Time
}

// NewAcceptor creates an Acceptor writing to storage.
func NewAcceptor(storage Storage) *Acceptor {
	return &Acceptor{storage: storage, now: time.Now}
}

// Accept stores f and returns the generated filename. A nil file yields a nil
// reference. Non-image files are rejected before anything is written.
func (a *Acceptor) Accept(ctx context.Context, f *File) (*string, error) {
	if f == nil {
		return nil, nil
	}
	if !IsImage(f.ContentType) {
		return nil, ErrInvalidFileType
	}
	name := a.filename(f.Filename)
	if err := a.storage.Save(ctx, name, f.ContentType, f.Body); err != nil {
		return nil, fmt.Errorf("store upload %s: %w", name, err)
	}
	return &name, nil
}

// Discard removes a previously accepted file. A nil reference is a no-op.
func (a *Acceptor) Discard(ctx context.Context, ref *string) error {
	if ref == nil {
		return nil
	}
	return a.storage.Remove(ctx, *ref)
}

// IsImage reports whether a declared content type is an image/* type.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

func (a *Acceptor) filename(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", a.now().UnixMilli(), suffix, ext)
}
