package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/metrics"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageStore persists an uploaded object and returns where it lives.
type ImageStore interface {
	Put(ctx context.Context, obj storage.Object) (*storage.Stored, error)
}

type UploadService struct {
	store   ImageStore
	maxSize int64
	now     func() time.Time
	metrics *metrics.Metrics
}

func NewUploadService(store ImageStore, maxSize int64, m *metrics.Metrics) *UploadService {
	return &UploadService{store: store, maxSize: maxSize, now: time.Now, metrics: m}
}

// sniffLen matches the read limit mimetype uses by default.
const sniffLen = 3072

// imageExtensions is the upload allowlist. SVG is left out since it can
// carry script when served from the public bucket.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ObjectKey is images/YYYY/MM/DD/<uuid><ext>.
func ObjectKey(now time.Time, ext string) string {
	return fmt.Sprintf("images/%s/%s%s", now.UTC().Format("2006/01/02"), uuid.NewString(), ext)
}

// UploadImage sniffs the content type from the file itself and ignores the
// client's Content-Type, so a renamed non-image is rejected.
func (s *UploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (*storage.Stored, error) {
	ctx = withFunction(ctx, "UploadImage")

	if file == nil {
		return nil, apperrors.Invalid("Provide image")
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, apperrors.Invalid(fmt.Sprintf("Image must be at most %d bytes", s.maxSize))
	}

	f, err := file.Open()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidUpload, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	contentType := mimetype.Detect(head[:n]).String()
	ext, ok := imageExtensions[contentType]
	if !ok {
		logger.WarnWithContext(ctx, "Rejected non image upload").
			String("filename", file.Filename).
			String("content_type", contentType).
			Log()
		return nil, apperrors.ErrInvalidUpload
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	stored, err := s.store.Put(ctx, storage.Object{
		Key:         ObjectKey(s.now(), ext),
		Body:        f,
		Size:        file.Size,
		ContentType: contentType,
	})
	s.metrics.ObserveCollaborator("storage", err)
	if err != nil {
		logger.ErrorWithContext(ctx, "Image upload failed").
			String("filename", file.Filename).
			Err(err).
			Log()
		return nil, collaboratorError(err)
	}

	logger.InfoWithContext(ctx, "Image uploaded").
		String("key", stored.Key).
		Int64("size", stored.Size).
		String("content_type", stored.ContentType).
		Log()
	return stored, nil
}
