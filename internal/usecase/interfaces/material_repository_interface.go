package interfaces

//go:generate mockgen -source=material_repository_interface.go -destination=mocks/material_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"quote3d/internal/domain/entities"
)

// IMaterialRepository reads the material catalog. Put is used by the seed command only.
type IMaterialRepository interface {
	List(ctx context.Context) ([]entities.Material, error)
	GetByCode(ctx context.Context, code string) (entities.Material, error)
	Put(ctx context.Context, material entities.Material) error
}
