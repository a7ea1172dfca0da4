package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const URLPrefix = "/uploads/"

var (
	ErrNotAllowed = errors.New("file type not allowed")
	ErrTooLarge   = errors.New("file exceeds size limit")
	ErrNotFound   = errors.New("file not found")
	ErrBadName    = errors.New("invalid filename")
)

// allowedTypes maps accepted MIME types (sniffed from content, not trusted
// from the client header) to the extension stored on disk.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store is a flat directory of uploaded images addressed by generated
// filenames. No transformation, no dedup; deleting a project does not reap
// the files it referenced.
type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

type SavedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

type FileInfo struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Save validates one multipart file part and writes it under a generated
// collision-resistant name. Nothing is written unless validation passes.
func (s *Store) Save(header *multipart.FileHeader) (SavedFile, error) {
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return SavedFile{}, ErrTooLarge
	}

	part, err := header.Open()

	if err != nil {
		return SavedFile{}, fmt.Errorf("open upload part: %w", err)
	}

	defer part.Close()

	detected, err := mimetype.DetectReader(part)

	if err != nil {
		return SavedFile{}, fmt.Errorf("sniff upload: %w", err)
	}

	ext, ok := allowedTypes[detected.String()]

	if !ok {
		return SavedFile{}, ErrNotAllowed
	}

	if _, err := part.Seek(0, io.SeekStart); err != nil {
		return SavedFile{}, fmt.Errorf("rewind upload part: %w", err)
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(s.dir, filename)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)

	if err != nil {
		return SavedFile{}, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(dst, part)

	if cerr := dst.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(path)
		return SavedFile{}, fmt.Errorf("write upload file: %w", err)
	}

	return SavedFile{
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     detected.String(),
		Size:         written,
		URL:          URLPrefix + filename,
	}, nil
}

func (s *Store) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)

	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	out := make([]FileInfo, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()

		if err != nil {
			continue
		}

		out = append(out, FileInfo{
			Filename:   entry.Name(),
			URL:        URLPrefix + entry.Name(),
			Size:       info.Size(),
			CreatedAt:  info.ModTime(),
			ModifiedAt: info.ModTime(),
		})
	}

	return out, nil
}

func (s *Store) Delete(filename string) error {
	if !validName(filename) {
		return ErrBadName
	}

	err := os.Remove(filepath.Join(s.dir, filename))

	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}

		return fmt.Errorf("delete upload file: %w", err)
	}

	return nil
}

// validName rejects anything that could escape the media directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	if strings.ContainsAny(name, "/\\") {
		return false
	}

	return filepath.Base(name) == name
}
