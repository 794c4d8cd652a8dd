package shoplist

import (
	"bytes"
	"context"
	"log"
	"strings"
)

// File is a rendered shopping list ready to be sent as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Service struct {
	repo Repository
	pdf  PDFOptions
}

func NewService(repo Repository, pdf PDFOptions) *Service {
	return &Service{repo: repo, pdf: pdf}
}

// Items returns the summed shopping list of userID.
func (s *Service) Items(ctx context.Context, userID int64) ([]Item, error) {
	lines, err := s.repo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines), nil
}

// Export renders the shopping list of userID in format (pdf or txt).
func (s *Service) Export(ctx context.Context, userID int64, format string) (*File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatPDF && format != FormatTXT {
		return nil, ErrUnknownFormat
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	file := &File{Name: "shoplist." + format}
	switch format {
	case FormatTXT:
		file.ContentType = "text/plain; charset=utf-8"
		err = WriteText(&buf, items)
	case FormatPDF:
		file.ContentType = "application/pdf"
		err = WritePDF(&buf, items, s.pdf)
	}
	if err != nil {
		return nil, err
	}
	file.Data = buf.Bytes()

	log.Printf("shoplist_export user_id=%d format=%s items=%d bytes=%d", userID, format, len(items), len(file.Data))
	return file, nil
}
