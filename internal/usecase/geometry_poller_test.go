package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quote3d/internal/domain/entities"
	mock_interfaces "quote3d/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleGeometry() *entities.GeometryProperties {
	return &entities.GeometryProperties{
		BoundingBox: entities.BoundingBox{X: 250, Y: 250, Z: 45},
		Volume:      2812500,
		VolumeCm3:   2812.5,
		SurfaceArea: 486000,
	}
}

func TestGeometryPoller_Wait(t *testing.T) {
	t.Run("done on third poll", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		p := NewGeometryPoller(repo, time.Second, time.Millisecond)

		inProcess := entities.File{ID: "f1", Status: entities.FileStatusInProcess}
		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "f1").Return(inProcess, nil),
			repo.EXPECT().GetByID(gomock.Any(), "f1").Return(inProcess, nil),
			repo.EXPECT().GetByID(gomock.Any(), "f1").Return(entities.File{ID: "f1", Status: entities.FileStatusDone, Geometry: sampleGeometry()}, nil),
		)

		g, err := p.Wait(context.Background(), "f1")
		require.NoError(t, err)
		assert.Equal(t, 2812.5, g.VolumeCm3)
		assert.Equal(t, 45.0, g.BoundingBox.Z)
	})

	t.Run("failed extraction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		p := NewGeometryPoller(repo, time.Second, time.Millisecond)

		repo.EXPECT().GetByID(gomock.Any(), "f1").Return(entities.File{ID: "f1", Status: entities.FileStatusFailed}, nil)

		_, err := p.Wait(context.Background(), "f1")
		assert.ErrorIs(t, err, ErrGeometryExtractionFailed)
	})

	t.Run("done without geometry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		p := NewGeometryPoller(repo, time.Second, time.Millisecond)

		repo.EXPECT().GetByID(gomock.Any(), "f1").Return(entities.File{ID: "f1", Status: entities.FileStatusDone}, nil)

		_, err := p.Wait(context.Background(), "f1")
		assert.ErrorIs(t, err, ErrGeometryMissing)
	})

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		p := NewGeometryPoller(repo, time.Second, time.Millisecond)

		repo.EXPECT().GetByID(gomock.Any(), "f1").Return(entities.File{}, nil)

		_, err := p.Wait(context.Background(), "f1")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("fetch error surfaces immediately", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		p := NewGeometryPoller(repo, time.Second, time.Millisecond)

		dbErr := errors.New("db")
		repo.EXPECT().GetByID(gomock.Any(), "f1").Return(entities.File{}, dbErr).Times(1)

		_, err := p.Wait(context.Background(), "f1")
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("times out while in process", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		p := NewGeometryPoller(repo, 30*time.Millisecond, 5*time.Millisecond)

		repo.EXPECT().GetByID(gomock.Any(), "f1").Return(entities.File{ID: "f1", Status: entities.FileStatusInProcess}, nil).MinTimes(1)

		start := time.Now()
		_, err := p.Wait(context.Background(), "f1")
		assert.ErrorIs(t, err, ErrGeometryTimeout)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		p := NewGeometryPoller(repo, time.Minute, 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		repo.EXPECT().GetByID(gomock.Any(), "f1").DoAndReturn(
			func(context.Context, string) (entities.File, error) {
				calls++
				if calls == 2 {
					cancel()
				}
				return entities.File{ID: "f1", Status: entities.FileStatusInProcess}, nil
			},
		).MinTimes(2)

		_, err := p.Wait(ctx, "f1")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("defaults", func(t *testing.T) {
		p := NewGeometryPoller(nil, 0, 0)
		assert.Equal(t, DefaultGeometryPollTimeout, p.timeout)
		assert.Equal(t, DefaultGeometryPollInterval, p.interval)
	})
}
