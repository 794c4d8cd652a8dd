package upload

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Image is a decoded image ready to be stored.
type Image struct {
	Data        []byte
	Ext         string // with the leading dot
	ContentType string
}

// AllowedTypes maps accepted content types to file extensions.
var AllowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeDataURI parses "data:image/<ext>;base64,<data>". The extension is
// taken from the declared subtype, the payload is sniffed to make sure it
// is an image of an allowed type.
func DecodeDataURI(uri string, maxBytes int64) (*Image, error) {
	uri = strings.TrimSpace(uri)
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrInvalidImage
	}
	subtype := strings.TrimSuffix(strings.TrimPrefix(header, "data:image/"), ";base64")
	if subtype == "" {
		return nil, ErrInvalidImage
	}
	if maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return nil, ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImage
	}
	return newImage(data, "."+strings.ToLower(subtype), maxBytes)
}

// FromFile reads a multipart upload.
func FromFile(fh *multipart.FileHeader, maxBytes int64) (*Image, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyImage
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return newImage(buf.Bytes(), "", maxBytes)
}

func newImage(data []byte, ext string, maxBytes int64) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrImageTooLarge
	}

	contentType := strings.Split(http.DetectContentType(data), ";")[0]
	canonical, ok := AllowedTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if !knownExt(ext) {
		ext = canonical
	}
	return &Image{Data: data, Ext: ext, ContentType: contentType}, nil
}

func knownExt(ext string) bool {
	switch ext {
	case ".jpg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
