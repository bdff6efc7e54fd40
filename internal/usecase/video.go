package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"

	"appointment-booking/pkg/storage"
)

// storeVideo saves an optional upload and returns its stored name, or nil
// when no file was sent.
func storeVideo(videos storage.VideoStore, file *multipart.FileHeader) (*string, error) {
	if file == nil {
		return nil, nil
	}
	if videos == nil {
		return nil, fmt.Errorf("%w: video uploads are disabled", ErrInvalidUpload)
	}

	name, err := videos.Save(file)
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return nil, fmt.Errorf("%w: %v", ErrUploadTooLarge, err)
	case errors.Is(err, storage.ErrNotVideo):
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	case err != nil:
		return nil, fmt.Errorf("store video: %w", err)
	}
	return &name, nil
}

// discardVideo removes a stored upload whose database row was never written.
func discardVideo(videos storage.VideoStore, name *string) {
	if name == nil || videos == nil {
		return
	}
	videos.Remove(*name)
}
