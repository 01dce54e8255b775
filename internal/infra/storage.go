package infra

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Upload categories the API accepts. Anything else is rejected before
// touching the filesystem.
var allowedCategories = map[string]bool{
	"boletos":  true,
	"products": true,
}

// FileStore writes base64 JSON uploads under root/<category>/ and hands back
// the public /files URL.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the directory served statically at /files.
func (f *FileStore) Root() string { return f.root }

// SaveBase64 decodes and writes the file, returning its public URL.
// The file name must be a bare name — separators or dot-dot segments are
// rejected so uploads cannot escape the category directory.
func (f *FileStore) SaveBase64(category, fileName, b64 string) (string, error) {
	if !allowedCategories[category] {
		return "", errors.New("categoria de upload inválida")
	}
	if fileName == "" || fileName != filepath.Base(fileName) ||
		strings.Contains(fileName, "..") || strings.ContainsAny(fileName, `/\`) {
		return "", errors.New("nome de arquivo inválido")
	}

	// Tolerate data URI prefixes ("data:application/pdf;base64,....")
	if idx := strings.Index(b64, ","); idx != -1 && strings.Contains(b64[:idx], "base64") {
		b64 = b64[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", errors.New("conteúdo base64 inválido")
	}

	dir := filepath.Join(f.root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return "/files/" + category + "/" + fileName, nil
}
