package usecase

import (
	"context"
	"errors"
	"testing"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
	mock_interfaces "quote3d/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMaterialUseCase_List(t *testing.T) {
	t.Run("sorted by price then code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIMaterialRepository(ctrl)
		uc := NewMaterialUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return([]entities.Material{
			{Code: "pa12", Price: decimal.RequireFromString("0.28")},
			{Code: "pp", Price: decimal.RequireFromString("0.18")},
			{Code: "pla", Price: decimal.RequireFromString("0.08")},
			{Code: "aaa", Price: decimal.RequireFromString("0.18")},
		}, nil)

		got, err := uc.List(context.Background())
		require.NoError(t, err)
		codes := make([]string, 0, len(got))
		for _, m := range got {
			codes = append(codes, m.Code)
		}
		assert.Equal(t, []string{"pla", "aaa", "pp", "pa12"}, codes)
	})

	t.Run("empty catalog is an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIMaterialRepository(ctrl)
		uc := NewMaterialUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return(nil, nil)

		got, err := uc.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIMaterialRepository(ctrl)
		uc := NewMaterialUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db"))

		_, err := uc.List(context.Background())
		assert.EqualError(t, err, "db")
	})
}

func TestMaterialUseCase_GetByCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIMaterialRepository(ctrl)
	uc := NewMaterialUseCase(repo)

	_, err := uc.GetByCode(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidMaterialID)

	repo.EXPECT().GetByCode(gomock.Any(), "gold").Return(entities.Material{}, nil)
	_, err = uc.GetByCode(context.Background(), "gold")
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestMaterialRepositoryMock_Put(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIMaterialRepository(ctrl)
	var _ interfaces.IMaterialRepository = repo

	repo.EXPECT().Put(gomock.Any(), pla()).Return(nil)
	require.NoError(t, repo.Put(context.Background(), pla()))
}
