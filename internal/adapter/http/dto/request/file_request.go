package request

import "quote3d/internal/domain/entities"

// StartProcessingRequest registers a file that is already in object storage.
type StartProcessingRequest struct {
	ID           string `json:"id" binding:"required"`
	OriginalName string `json:"originalName" binding:"required"`
	StoragePath  string `json:"storagePath" binding:"required"`
	SizeBytes    int64  `json:"sizeBytes" binding:"min=0"`
	MimeType     string `json:"mimeType" binding:"required"`
}

func (r StartProcessingRequest) ToFile() entities.File {
	return entities.File{
		ID:           r.ID,
		OriginalName: r.OriginalName,
		StoragePath:  r.StoragePath,
		SizeBytes:    r.SizeBytes,
		MimeType:     r.MimeType,
	}
}
