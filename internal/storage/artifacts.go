// Package storage saves delivery-proof uploads (photos, receipts) that
// back a proposal's verification reference.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

const (
	MaxFileSize   = 5 * 1024 * 1024
	MaxFilesCount = 6
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// SaveVerificationArtifacts writes the uploaded proof files under
// uploads/<proposalID>/ and returns their public paths.
func SaveVerificationArtifacts(proposalID string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxFilesCount {
		return nil, fmt.Errorf("at most %d files allowed", MaxFilesCount)
	}

	uploadDir := filepath.Join("uploads", proposalID)
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}

	var savedPaths []string

	for i, fileHeader := range files {
		if fileHeader.Size > MaxFileSize {
			return nil, fmt.Errorf("file %s exceeds the 5MB limit", fileHeader.Filename)
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedExtensions[ext] {
			return nil, fmt.Errorf("file %s has an unsupported format; JPG, PNG and PDF are allowed", fileHeader.Filename)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		name := fmt.Sprintf("artifact_%d%s", i+1, ext)
		dstPath := filepath.Join(uploadDir, name)

		dst, err := os.Create(dstPath)
		if err != nil {
			return nil, err
		}
		defer dst.Close()

		if _, err := io.Copy(dst, file); err != nil {
			return nil, err
		}

		savedPaths = append(savedPaths, "/"+dstPath)
	}

	return savedPaths, nil
}
