package interfaces

//go:generate mockgen -source=object_storage_interface.go -destination=mocks/object_storage_interface_mock.go -package=mock_interfaces

import (
	"context"
	"io"
)

// IObjectStorage stores uploaded CAD files and returns their storage path.
type IObjectStorage interface {
	PutObject(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error)
}
