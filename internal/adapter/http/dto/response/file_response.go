package response

import (
	"time"

	"quote3d/internal/domain/entities"
)

type FileAcceptedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type BoundingBoxResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type GeometryResponse struct {
	BoundingBox BoundingBoxResponse `json:"boundingBox"`
	Volume      float64             `json:"volume"`
	VolumeCm3   float64             `json:"volumeCm3"`
	SurfaceArea float64             `json:"surfaceArea"`
}

// FileStatusResponse is tagged by status; properties is only present when
// status is done.
type FileStatusResponse struct {
	Status           string            `json:"status"`
	ProcessingTimeMs int64             `json:"processingTimeMs"`
	Properties       *GeometryResponse `json:"properties,omitempty"`
}

func FromFileAccepted(f entities.File) FileAcceptedResponse {
	return FileAcceptedResponse{ID: f.ID, Status: string(f.Status)}
}

func FromGeometry(g entities.GeometryProperties) GeometryResponse {
	return GeometryResponse{
		BoundingBox: BoundingBoxResponse{X: g.BoundingBox.X, Y: g.BoundingBox.Y, Z: g.BoundingBox.Z},
		Volume:      g.Volume,
		VolumeCm3:   g.VolumeCm3,
		SurfaceArea: g.SurfaceArea,
	}
}

func FromFileStatus(f entities.File, now time.Time) FileStatusResponse {
	resp := FileStatusResponse{
		Status:           string(f.Status),
		ProcessingTimeMs: f.ProcessingTime(now).Milliseconds(),
	}
	if f.Status == entities.FileStatusDone && f.Geometry != nil {
		g := FromGeometry(*f.Geometry)
		resp.Properties = &g
	}
	return resp
}
