package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
)

const fileColumns = `id, original_name, storage_path, size_bytes, mime_type, status,
bbox_x, bbox_y, bbox_z, volume, volume_cm3, surface_area, uploaded_at, processed_at`

type FileRepository struct {
	db *sql.DB
}

var _ interfaces.IFileRepository = (*FileRepository)(nil)

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, f entities.File) (entities.File, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO files (id, original_name, storage_path, size_bytes, mime_type, status, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.OriginalName, f.StoragePath, f.SizeBytes, f.MimeType, string(f.Status), f.UploadedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.File{}, interfaces.ErrRecordExists
		}
		return entities.File{}, fmt.Errorf("insert file: %w", err)
	}
	return f, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (entities.File, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.File{}, nil
	}
	if err != nil {
		return entities.File{}, fmt.Errorf("get file: %w", err)
	}
	return f, nil
}

func (r *FileRepository) FinishExtraction(ctx context.Context, id string, status entities.FileStatus, geometry *entities.GeometryProperties, processedAt time.Time) (entities.File, error) {
	var g entities.GeometryProperties
	hasGeometry := geometry != nil
	if hasGeometry {
		g = *geometry
	}
	geo := func(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: hasGeometry} }

	row := r.db.QueryRowContext(ctx,
		`UPDATE files
		 SET status = $2, processed_at = $3,
		     bbox_x = $4, bbox_y = $5, bbox_z = $6, volume = $7, volume_cm3 = $8, surface_area = $9
		 WHERE id = $1 AND status = 'in_process'
		 RETURNING `+fileColumns,
		id, string(status), processedAt,
		geo(g.BoundingBox.X), geo(g.BoundingBox.Y), geo(g.BoundingBox.Z),
		geo(g.Volume), geo(g.VolumeCm3), geo(g.SurfaceArea),
	)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.File{}, fmt.Errorf("finish extraction of file %s: %w", id, interfaces.ErrStaleState)
	}
	if err != nil {
		return entities.File{}, fmt.Errorf("finish extraction: %w", err)
	}
	return f, nil
}

func scanFile(row rowScanner) (entities.File, error) {
	var (
		f                                entities.File
		status                           string
		x, y, z, volume, volCm3, surface sql.NullFloat64
		processedAt                      sql.NullTime
	)
	err := row.Scan(&f.ID, &f.OriginalName, &f.StoragePath, &f.SizeBytes, &f.MimeType, &status,
		&x, &y, &z, &volume, &volCm3, &surface, &f.UploadedAt, &processedAt)
	if err != nil {
		return entities.File{}, err
	}

	f.Status = entities.FileStatus(status)
	f.UploadedAt = f.UploadedAt.UTC()
	if volCm3.Valid {
		f.Geometry = &entities.GeometryProperties{
			BoundingBox: entities.BoundingBox{X: x.Float64, Y: y.Float64, Z: z.Float64},
			Volume:      volume.Float64,
			VolumeCm3:   volCm3.Float64,
			SurfaceArea: surface.Float64,
		}
	}
	if processedAt.Valid {
		p := processedAt.Time.UTC()
		f.ProcessedAt = &p
	}
	return f, nil
}
