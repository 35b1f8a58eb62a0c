package interfaces

//go:generate mockgen -source=file_repository_interface.go -destination=mocks/file_repository_interface_mock.go -package=mock_interfaces

import (
	"context"
	"time"

	"quote3d/internal/domain/entities"
)

// IFileRepository abstracts persistence for uploaded files.
//
// GetByID must always observe the latest write (no cached or eventually
// consistent reads): the geometry poller relies on it.
type IFileRepository interface {
	Create(ctx context.Context, f entities.File) (entities.File, error)
	GetByID(ctx context.Context, id string) (entities.File, error)
	FinishExtraction(ctx context.Context, id string, status entities.FileStatus, geometry *entities.GeometryProperties, processedAt time.Time) (entities.File, error)
}
