package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

var (
	ErrTooLarge = errors.New("storage: file too large")
	ErrNotVideo = errors.New("storage: file is not a video")
)

// VideoStore persists uploaded recordings and returns the stored file name.
type VideoStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(name string) error
}

type LocalVideoStore struct {
	dir      string
	maxBytes int64
	now      func() time.Time
	log      *zap.Logger
}

func NewLocalVideoStore(dir string, maxBytes int64, log *zap.Logger) (*LocalVideoStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalVideoStore{
		dir:      dir,
		maxBytes: maxBytes,
		now:      time.Now,
		log:      log.With(zap.String("storage", "video")),
	}, nil
}

// MaxBytes is the largest accepted upload.
func (s *LocalVideoStore) MaxBytes() int64 {
	return s.maxBytes
}

func (s *LocalVideoStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, file.Size, s.maxBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "video/") {
		return "", fmt.Errorf("%w: %s", ErrNotVideo, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := s.fileName(file.Filename, mtype.Extension())
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = fmt.Errorf("%w: limit %d", ErrTooLarge, s.maxBytes)
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	s.log.Info("Video stored",
		zap.String("file", name),
		zap.String("mime", mtype.String()),
		zap.Int64("bytes", written),
	)
	return name, nil
}

func (s *LocalVideoStore) Remove(name string) error {
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("Failed to remove video", zap.String("file", name), zap.Error(err))
		return err
	}
	return nil
}

// fileName keeps the original name readable but safe: <unix-millis>-<slug><ext>.
func (s *LocalVideoStore) fileName(original, detectedExt string) string {
	original = filepath.Base(original)
	ext := filepath.Ext(original)
	base := slug.Make(strings.TrimSuffix(original, ext))
	if base == "" {
		base = "video"
	}

	ext = slug.Make(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = strings.TrimPrefix(detectedExt, ".")
	}
	if ext != "" {
		ext = "." + ext
	}

	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), base, ext)
}
