package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
)

const (
	DefaultGeometryPollTimeout  = 10 * time.Second
	DefaultGeometryPollInterval = 500 * time.Millisecond
)

var (
	ErrGeometryExtractionFailed = errors.New("geometry extraction failed")
	ErrGeometryTimeout          = errors.New("waiting for geometry data timed out")
	ErrGeometryMissing          = errors.New("geometry data is missing unexpectedly for file")
)

// GeometryPoller waits for a file's geometry extraction to reach a terminal
// state. Every tick reads the file record again; the repository contract
// guarantees those reads are not served from a cache.
type GeometryPoller struct {
	files    interfaces.IFileRepository
	timeout  time.Duration
	interval time.Duration
}

func NewGeometryPoller(files interfaces.IFileRepository, timeout, interval time.Duration) *GeometryPoller {
	if timeout <= 0 {
		timeout = DefaultGeometryPollTimeout
	}
	if interval <= 0 {
		interval = DefaultGeometryPollInterval
	}
	return &GeometryPoller{files: files, timeout: timeout, interval: interval}
}

// Wait returns the geometry of fileID once extraction is done.
//
// It fails with ErrGeometryExtractionFailed when extraction failed, with
// ErrGeometryTimeout when no terminal state is seen within the timeout and
// with ErrFileNotFound or the repository error when the read itself fails.
// Cancelling ctx stops polling and returns ctx.Err().
func (p *GeometryPoller) Wait(ctx context.Context, fileID string) (entities.GeometryProperties, error) {
	deadline := time.NewTimer(p.timeout)
	defer deadline.Stop()

	for attempt := 1; ; attempt++ {
		f, err := p.files.GetByID(ctx, fileID)
		if err != nil {
			log.Printf("[geometry][poller] fetch failed file_id=%s attempt=%d err=%v", fileID, attempt, err)
			return entities.GeometryProperties{}, fmt.Errorf("fetch file %s: %w", fileID, err)
		}
		if f.ID == "" {
			return entities.GeometryProperties{}, ErrFileNotFound
		}

		switch f.Status {
		case entities.FileStatusDone:
			if f.Geometry == nil {
				return entities.GeometryProperties{}, ErrGeometryMissing
			}
			log.Printf("[geometry][poller] done file_id=%s attempts=%d", fileID, attempt)
			return *f.Geometry, nil
		case entities.FileStatusFailed:
			return entities.GeometryProperties{}, ErrGeometryExtractionFailed
		}

		wait := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			wait.Stop()
			return entities.GeometryProperties{}, ctx.Err()
		case <-deadline.C:
			wait.Stop()
			log.Printf("[geometry][poller] timed out file_id=%s attempts=%d timeout=%s", fileID, attempt, p.timeout)
			return entities.GeometryProperties{}, ErrGeometryTimeout
		case <-wait.C:
		}
	}
}
