// Package storage holds blob store adapters for task image attachments.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/taskforge/task-manager/internal/core/ports"
)

// CloudinaryStore uploads images to Cloudinary.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from a cloudinary:// connection URL.
func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{client: client}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, data []byte, folder string) (*ports.UploadedImage, error) {
	res, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}

	return &ports.UploadedImage{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Width:    res.Width,
		Height:   res.Height,
		Format:   res.Format,
		Size:     int64(res.Bytes),
	}, nil
}
