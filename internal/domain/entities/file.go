package entities

import "time"

// FileStatus represents the geometry extraction state of an uploaded CAD file.
type FileStatus string

const (
	FileStatusInProcess FileStatus = "in_process"
	FileStatusDone      FileStatus = "done"
	FileStatusFailed    FileStatus = "failed"
)

type BoundingBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GeometryProperties are the measurements produced by geometry extraction.
// Volume is in mm³, VolumeCm3 is the same volume in cm³ and drives pricing.
type GeometryProperties struct {
	BoundingBox BoundingBox `json:"boundingBox"`
	Volume      float64     `json:"volume"`
	VolumeCm3   float64     `json:"volumeCm3"`
	SurfaceArea float64     `json:"surfaceArea"`
}

// File is an uploaded CAD file and its extraction result.
//
// Storage model:
//   - PK: id
//
// Lifecycle: created in_process, then mutated exactly once by the extraction
// completion to done (with Geometry) or failed. ProcessedAt is set by that
// same write.
type File struct {
	ID           string
	OriginalName string
	StoragePath  string
	SizeBytes    int64
	MimeType     string
	Status       FileStatus
	Geometry     *GeometryProperties
	UploadedAt   time.Time
	ProcessedAt  *time.Time
}

// ProcessingTime is the time spent in extraction so far, or in total once the
// file reached a terminal status.
func (f File) ProcessingTime(now time.Time) time.Duration {
	end := now
	if f.ProcessedAt != nil {
		end = *f.ProcessedAt
	}
	if end.Before(f.UploadedAt) {
		return 0
	}
	return end.Sub(f.UploadedAt)
}
