package ports

import "context"

// UploadedImage is the blob store's description of a stored image. The core
// never inspects file contents; only the URL is ever attached to a task.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
}

// ImageStore is the opaque blob store dependency.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, folder string) (*UploadedImage, error)
}
