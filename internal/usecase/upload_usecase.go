package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileRequired        = errors.New("no file uploaded")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// BlobStore persists uploaded bytes and returns the path clients refer to them by.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

type UploadKind string

const (
	UploadCV           UploadKind = "cv"
	UploadProfileImage UploadKind = "profile-images"
)

type UploadInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

type UploadResult struct {
	FileName     string `json:"fileName"`
	FilePath     string `json:"filePath"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
}

type UploadUsecase interface {
	Upload(ctx context.Context, kind UploadKind, in UploadInput) (UploadResult, error)
}

type UploadLimits struct {
	CVMaxBytes    int64
	ImageMaxBytes int64
}

type Uploads struct {
	store  BlobStore
	limits UploadLimits
	logger *log.Logger
	now    func() time.Time
}

var cvTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

func NewUploadUsecase(store BlobStore, limits UploadLimits, logger *log.Logger) *Uploads {
	if limits.CVMaxBytes <= 0 {
		limits.CVMaxBytes = 2 << 20
	}
	if limits.ImageMaxBytes <= 0 {
		limits.ImageMaxBytes = 5 << 20
	}
	return &Uploads{store: store, limits: limits, logger: logger, now: time.Now}
}

func (u *Uploads) Upload(ctx context.Context, kind UploadKind, in UploadInput) (UploadResult, error) {
	if in.Body == nil || in.Size == 0 {
		return UploadResult{}, ErrFileRequired
	}

	mime := strings.ToLower(strings.TrimSpace(in.ContentType))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	var limit int64
	ext := strings.ToLower(path.Ext(in.OriginalName))
	switch kind {
	case UploadCV:
		want, ok := cvTypes[mime]
		if !ok {
			return UploadResult{}, ErrUnsupportedFileType
		}
		if ext == "" {
			ext = want
		}
		limit = u.limits.CVMaxBytes
	case UploadProfileImage:
		if !strings.HasPrefix(mime, "image/") {
			return UploadResult{}, ErrUnsupportedFileType
		}
		if ext == "" {
			ext = "." + strings.TrimPrefix(mime, "image/")
		}
		limit = u.limits.ImageMaxBytes
	default:
		return UploadResult{}, ErrUnsupportedFileType
	}
	if in.Size > limit {
		return UploadResult{}, ErrFileTooLarge
	}

	name := fmt.Sprintf("%s-%d-%s%s", uploadPrefix(kind), u.now().UnixMilli(), uuid.NewString()[:8], ext)
	key := string(kind) + "/" + name

	// Guard against a Size header that understates the body.
	stored, err := u.store.Put(ctx, key, mime, io.LimitReader(in.Body, limit+1))
	if err != nil {
		u.logf("[Uploads] put failed | key=%s err=%v", key, err)
		return UploadResult{}, ErrInternal
	}

	return UploadResult{
		FileName:     name,
		FilePath:     stored,
		OriginalName: in.OriginalName,
		Size:         in.Size,
		MimeType:     mime,
	}, nil
}

func uploadPrefix(kind UploadKind) string {
	if kind == UploadProfileImage {
		return "profile"
	}
	return "cv"
}

func (u *Uploads) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
