package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// allowedImageTypes maps accepted MIME values (validated via magic-number
// signatures, not extensions or Content-Type headers) to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StorageService persists uploaded story images under a local upload
// directory and returns their public URLs.
type StorageService struct {
	uploadDir string
	baseURL   string
}

func NewStorageService(uploadDir, baseURL string) (*StorageService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	return &StorageService{uploadDir: uploadDir, baseURL: baseURL}, nil
}

// SaveImage validates the file's real type by its magic numbers and writes it
// to the upload directory. Returns the public URL of the stored image.
func (s *StorageService) SaveImage(file multipart.File) (string, error) {
	// filetype needs at least 262 bytes; read 512 to be safe.
	header := make([]byte, 512)
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read file header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("reset file reader: %w", err)
	}

	kind, err := filetype.Match(header[:n])
	if err != nil {
		return "", fmt.Errorf("file type detection failed: %w", err)
	}

	ext, ok := allowedImageTypes[kind.MIME.Value]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", kind.MIME.Value)
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.baseURL + "/uploads/" + filename, nil
}
