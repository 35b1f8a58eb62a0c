package interfaces

//go:generate mockgen -source=geometry_extractor_interface.go -destination=mocks/geometry_extractor_interface_mock.go -package=mock_interfaces

import "context"

// IGeometryExtractor starts geometry extraction for a stored file. The result is
// written back to the file record asynchronously.
type IGeometryExtractor interface {
	Start(ctx context.Context, fileID string) error
}
