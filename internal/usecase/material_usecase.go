package usecase

//go:generate mockgen -source=material_usecase.go -destination=../adapter/http/handlers/mocks/material_usecase_mock.go -package=mocks

import (
	"context"
	"errors"
	"sort"
	"strings"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
)

var (
	ErrMaterialNotFound  = errors.New("material not found")
	ErrInvalidMaterialID = errors.New("invalid material id")
)

// IMaterialUseCase exposes the read-only material catalog.
type IMaterialUseCase interface {
	List(ctx context.Context) ([]entities.Material, error)
	GetByCode(ctx context.Context, code string) (entities.Material, error)
}

type MaterialUseCase struct {
	repo interfaces.IMaterialRepository
}

var _ IMaterialUseCase = (*MaterialUseCase)(nil)

func NewMaterialUseCase(repo interfaces.IMaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// List returns the catalog ordered by price factor, cheapest first.
func (u *MaterialUseCase) List(ctx context.Context) ([]entities.Material, error) {
	materials, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(materials, func(i, j int) bool {
		if c := materials[i].Price.Cmp(materials[j].Price); c != 0 {
			return c < 0
		}
		return materials[i].Code < materials[j].Code
	})
	if materials == nil {
		materials = []entities.Material{}
	}
	return materials, nil
}

func (u *MaterialUseCase) GetByCode(ctx context.Context, code string) (entities.Material, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.Material{}, ErrInvalidMaterialID
	}
	m, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		return entities.Material{}, err
	}
	if m.Code == "" {
		return entities.Material{}, ErrMaterialNotFound
	}
	return m, nil
}
