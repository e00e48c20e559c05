package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// DefaultMaxBytes is the largest accepted image
	DefaultMaxBytes = 10 << 20
	// URLPrefix is where stored images are served from
	URLPrefix = "/uploads/"
)

var (
	ErrNoFile   = errors.New("no image file provided")
	ErrTooLarge = errors.New("file too large")
	ErrNotImage = errors.New("only image files are allowed")
)

// File describes a stored upload
type File struct {
	URL          string `json:"imageUrl"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MIMEType     string `json:"mimeType"`
}

// Store keeps uploaded reference images on local disk
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory uploads are written to
func (s *Store) Dir() string {
	return s.dir
}

// MaxBytes returns the size limit for one upload
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates r as an image and writes it under a unique name.
// The type is detected from content, not from the client supplied name.
func (s *Store) Save(r io.Reader, originalName string) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}

	name := "image-" + uuid.NewString() + mime.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	return &File{
		URL:          URLPrefix + name,
		Filename:     name,
		OriginalName: filepath.Base(originalName),
		Size:         int64(len(data)),
		MIMEType:     mime.String(),
	}, nil
}
