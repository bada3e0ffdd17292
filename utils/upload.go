package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blogfolio/blogfolio/config"
)

// ErrFileTooLarge is returned when an uploaded file exceeds the configured cap.
var ErrFileTooLarge = errors.New("uploaded file exceeds size limit")

// SaveImage stores the multipart file from the named form field under the
// upload directory and returns its public URL. Returns ("", nil) when the
// request carries no file in that field.
func SaveImage(ctx *gin.Context, field string) (string, error) {
	file, header, err := ctx.Request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	cfg := config.Get()
	maxSize := int64(cfg.UploadMaxMB) * 1024 * 1024
	if header.Size > 0 && header.Size > maxSize {
		return "", ErrFileTooLarge
	}

	now := time.Now()
	year, month, day := now.Format("2006"), now.Format("01"), now.Format("02")
	baseDir := filepath.Join(cfg.UploadDir, year, month, day)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", err
	}

	fname := filepath.Base(header.Filename)
	if fname == "." || fname == "" {
		fname = fmt.Sprintf("file_%d", now.UnixNano())
	}
	// prevent collisions between uploads of the same filename
	safeName := fmt.Sprintf("%d_%s", now.UnixNano(), fname)
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		return "", err
	}
	if written > maxSize {
		_ = os.Remove(dstPath)
		return "", ErrFileTooLarge
	}

	return fmt.Sprintf("/static/uploads/%s/%s/%s/%s", year, month, day, safeName), nil
}
