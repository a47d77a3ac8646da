package util

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mailio/go-campaign-console/types"
)

// IsCSVFile checks the extension of an upload
func IsCSVFile(filename string) bool {
	// csv exports of spreadsheets are sometimes saved as .txt
	uploadExtensions := map[string]bool{
		".csv": true,
		".txt": true,
	}
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := uploadExtensions[ext]
	return ok
}

// ReadFileBase64 reads a CSV upload and encodes it for embedding in a JSON body
func ReadFileBase64(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", types.ErrMissingCSV
	}
	if !IsCSVFile(path) {
		return "", types.ErrInvalidFileType
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", types.ErrEmptyFile
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeBase64 accepts plain base64 as well as a data URL (data:text/csv;base64,...)
func DecodeBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		if comma := strings.Index(encoded, ","); comma >= 0 {
			encoded = encoded[comma+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// some servers strip the padding
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	}
	return data, nil
}

// WriteBase64File decodes encoded into path (the "download" of a generated CSV)
func WriteBase64File(encoded, path string) (int, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return 0, fmt.Errorf("invalid base64 file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, err
	}
	return len(data), nil
}
