// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package gallery

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hisame-dev/wagarakan/internal/metrics"
)

var (
	// ErrUploadExists is returned when the target filename is already
	// taken and overwrite was not requested.
	ErrUploadExists = errors.New("image already exists")

	// ErrUploadType is returned for uploads whose name or content is not
	// a supported image format.
	ErrUploadType = errors.New("unsupported image type")

	// ErrUploadTooLarge is returned when the upload exceeds the size cap.
	ErrUploadTooLarge = errors.New("image exceeds size limit")
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// allowedContentTypes are the sniffed MIME types accepted for upload.
var allowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// SanitizeFilename reduces an uploaded filename to a safe basename:
// path components stripped, unsafe characters collapsed to underscores.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}

// SaveUpload writes an uploaded image into the patterns directory after
// sanitizing the filename, enforcing the size cap, and sniffing the content
// type. Returns the stored filename. The index is not rescanned here; the
// watcher or an explicit rescan picks the file up.
func (s *Store) SaveUpload(filename string, r io.Reader, maxBytes int64, overwrite bool) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" || !IsImageFile(name) {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: %q", ErrUploadType, filename)
	}

	// Read one extra byte past the cap so oversize uploads are detected
	// without buffering the whole stream.
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: limit %d bytes", ErrUploadTooLarge, maxBytes)
	}
	if len(data) == 0 {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: empty file", ErrUploadType)
	}

	if ct := http.DetectContentType(data); !allowedContentTypes[ct] {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: detected %s", ErrUploadType, ct)
	}

	if err := os.MkdirAll(s.patternsDir, 0o750); err != nil {
		return "", fmt.Errorf("create patterns dir: %w", err)
	}
	target := filepath.Join(s.patternsDir, name)
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return "", fmt.Errorf("%w: %s", ErrUploadExists, name)
		}
	}
	if err := os.WriteFile(target, data, 0o640); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	metrics.UploadsTotal.WithLabelValues("accepted").Inc()
	s.logger.Info().Str("file", name).Int("bytes", len(data)).Msg("Image uploaded")
	return name, nil
}
