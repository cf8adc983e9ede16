package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// memFile adapts a byte slice to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestSaveImageAcceptsPNG(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorageService(dir, "http://localhost:3000")
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}

	payload := append(append([]byte(nil), pngHeader...), bytes.Repeat([]byte{0xAB}, 300)...)
	url, err := storage.SaveImage(memFile{bytes.NewReader(payload)})
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:3000/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}

	name := strings.TrimPrefix(url, "http://localhost:3000/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatal("stored file content differs from the upload")
	}
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	storage, err := NewStorageService(t.TempDir(), "http://localhost:3000")
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}

	payload := append([]byte("#!/bin/sh\necho pwned\n"), bytes.Repeat([]byte{' '}, 300)...)
	if _, err := storage.SaveImage(memFile{bytes.NewReader(payload)}); err == nil {
		t.Fatal("SaveImage accepted a non-image file")
	}
}
