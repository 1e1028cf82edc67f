package upload

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/simp-lee/agencyhub/internal/domain"
)

// allowedTypes maps accepted image MIME types to the extension used in keys.
var allowedTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// ObjectPutter is the part of the S3 client the upload service uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config describes where uploads go.
type Config struct {
	Bucket string
	Region string
	Prefix string
	// PublicBaseURL, when set, replaces the virtual-hosted S3 URL in results
	// (for a CDN in front of the bucket).
	PublicBaseURL string
	MaxBytes      int64
}

// Result describes a stored object.
type Result struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Service stores admin-uploaded images.
type Service interface {
	// Upload stores data and returns its public location. The content type
	// is sniffed from the bytes; the client-supplied name only feeds logs.
	Upload(ctx context.Context, filename string, data []byte) (*Result, error)
	MaxBytes() int64
}

type uploadService struct {
	client ObjectPutter
	cfg    Config
	now    func() time.Time
}

// NewService creates a new upload Service.
func NewService(client ObjectPutter, cfg Config) Service {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 5 << 20
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &uploadService{client: client, cfg: cfg, now: time.Now}
}

func (s *uploadService) MaxBytes() int64 { return s.cfg.MaxBytes }

func (s *uploadService) Upload(ctx context.Context, filename string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, domain.NewValidationError(map[string]string{"file": "File is empty"})
	}
	if int64(len(data)) > s.cfg.MaxBytes {
		return nil, domain.NewValidationError(map[string]string{"file": "Must be at most " + humanSize(s.cfg.MaxBytes)})
	}

	mime := mimetype.Detect(data)
	contentType := mime.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, domain.NewValidationError(map[string]string{"file": "Must be a JPEG, PNG, WebP, GIF or SVG image"})
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate object key", err)
	}
	key := path.Join(s.cfg.Prefix, s.now().UTC().Format("2006/01"), id.String()+ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to store file", err)
	}

	slog.InfoContext(ctx, "file uploaded",
		slog.String("key", key),
		slog.String("original_name", filename),
		slog.Int("size", len(data)),
	)
	return &Result{Key: key, URL: s.publicURL(key), ContentType: contentType, Size: int64(len(data))}, nil
}

func (s *uploadService) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return s.cfg.PublicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func humanSize(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return strconv.FormatInt(n>>20, 10) + " MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}
