package utils

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

var imageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// SaveUpload stores the multipart image field under root/folder and returns
// its path relative to root ("" when the field is absent).
func SaveUpload(c *gin.Context, field, root, folder string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExt[ext] {
		return "", ErrUnsupportedFile
	}
	if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(fh, filepath.Join(root, folder, name)); err != nil {
		return "", err
	}
	return path.Join(folder, name), nil
}
