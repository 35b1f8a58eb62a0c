// Package extraction stands in for the external geometry extraction service.
// It does not read the CAD file; it reports a fixed geometry after a delay.
package extraction

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
)

// SampleGeometry is the result written for every extracted file.
var SampleGeometry = entities.GeometryProperties{
	BoundingBox: entities.BoundingBox{X: 250, Y: 250, Z: 45},
	Volume:      2812500,
	VolumeCm3:   2812.5,
	SurfaceArea: 486000,
}

type SimulatedExtractor struct {
	files interfaces.IFileRepository
	delay time.Duration
	now   func() time.Time

	mu      sync.Mutex
	pending map[string]*time.Timer
}

var _ interfaces.IGeometryExtractor = (*SimulatedExtractor)(nil)

// NewSimulatedExtractor returns an extractor that finishes each file after
// delay. A zero delay finishes inside Start.
func NewSimulatedExtractor(files interfaces.IFileRepository, delay time.Duration) *SimulatedExtractor {
	return &SimulatedExtractor{
		files:   files,
		delay:   delay,
		now:     time.Now,
		pending: make(map[string]*time.Timer),
	}
}

func (e *SimulatedExtractor) Start(ctx context.Context, fileID string) error {
	if e.delay <= 0 {
		return e.finish(ctx, fileID)
	}

	// the request context ends before the timer fires
	bg := context.WithoutCancel(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.pending[fileID]; ok {
		return nil
	}
	e.pending[fileID] = time.AfterFunc(e.delay, func() {
		e.mu.Lock()
		delete(e.pending, fileID)
		e.mu.Unlock()

		if err := e.finish(bg, fileID); err != nil {
			log.Printf("[extraction][simulated] finish failed file_id=%s err=%v", fileID, err)
		}
	})
	log.Printf("[extraction][simulated] scheduled file_id=%s delay=%s", fileID, e.delay)
	return nil
}

// Stop cancels extractions that have not fired yet and returns how many were dropped.
func (e *SimulatedExtractor) Stop() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	stopped := 0
	for id, timer := range e.pending {
		if timer.Stop() {
			stopped++
		}
		delete(e.pending, id)
	}
	return stopped
}

func (e *SimulatedExtractor) finish(ctx context.Context, fileID string) error {
	geometry := SampleGeometry
	_, err := e.files.FinishExtraction(ctx, fileID, entities.FileStatusDone, &geometry, e.now().UTC())
	if errors.Is(err, interfaces.ErrStaleState) {
		log.Printf("[extraction][simulated] file already finished file_id=%s", fileID)
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("[extraction][simulated] done file_id=%s volume_cm3=%.1f", fileID, geometry.VolumeCm3)
	return nil
}
