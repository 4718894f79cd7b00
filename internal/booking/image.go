package booking

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Empty reports whether there is nothing to upload.
func (i *Image) Empty() bool {
	return i == nil || len(i.Data) == 0
}

// OpenImage reads an image from disk. The content type comes from the file
// extension, falling back to sniffing the first bytes.
func OpenImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return &Image{
		Name:        filepath.Base(path),
		ContentType: detectContentType(path, data),
		Data:        data,
	}, nil
}

func detectContentType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}
