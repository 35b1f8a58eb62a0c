package usecase

//go:generate mockgen -source=file_usecase.go -destination=../adapter/http/handlers/mocks/file_usecase_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// MaxUploadBytes is the largest CAD file accepted for upload.
const MaxUploadBytes = 50_000_000

var (
	ErrFileNotFound           = errors.New("file not found")
	ErrFileAlreadyExists      = errors.New("file already exists")
	ErrInvalidFileID          = errors.New("invalid file id")
	ErrInvalidFilePayload     = errors.New("invalid file payload")
	ErrUnsupportedFileType    = errors.New("file must be of type .step or .stp")
	ErrFileTooLarge           = errors.New("file must be smaller than 50MB")
	ErrStorageNotConfigured   = errors.New("object storage not configured")
	ErrStorageUploadFailed    = errors.New("storing uploaded file failed")
	ErrExtractionStartFailed  = errors.New("geometry data extraction failed")
	ErrExtractorNotConfigured = errors.New("geometry extractor not configured")
)

var supportedCADFileExtensions = []string{".step", ".stp"}

// IFileUseCase covers CAD file intake and the extraction status read.
type IFileUseCase interface {
	StartProcessing(ctx context.Context, f entities.File) (entities.File, error)
	Upload(ctx context.Context, originalName, mimeType string, size int64, body io.Reader) (entities.File, error)
	GetByID(ctx context.Context, id string) (entities.File, error)
}

type FileUseCase struct {
	repo      interfaces.IFileRepository
	storage   interfaces.IObjectStorage
	extractor interfaces.IGeometryExtractor
	now       func() time.Time
}

var _ IFileUseCase = (*FileUseCase)(nil)

func NewFileUseCase(repo interfaces.IFileRepository, storage interfaces.IObjectStorage, extractor interfaces.IGeometryExtractor) *FileUseCase {
	return &FileUseCase{repo: repo, storage: storage, extractor: extractor, now: time.Now}
}

// StartProcessing registers an already stored file and kicks off geometry
// extraction for it.
func (u *FileUseCase) StartProcessing(ctx context.Context, f entities.File) (entities.File, error) {
	f.ID = strings.TrimSpace(f.ID)
	if _, err := uuid.Parse(f.ID); err != nil {
		return entities.File{}, ErrInvalidFileID
	}
	f.OriginalName = strings.TrimSpace(f.OriginalName)
	f.StoragePath = strings.TrimSpace(f.StoragePath)
	f.MimeType = strings.TrimSpace(f.MimeType)
	if f.OriginalName == "" || f.StoragePath == "" || f.MimeType == "" || f.SizeBytes < 0 {
		return entities.File{}, ErrInvalidFilePayload
	}
	if u.extractor == nil {
		return entities.File{}, ErrExtractorNotConfigured
	}

	f.Status = entities.FileStatusInProcess
	f.Geometry = nil
	f.ProcessedAt = nil
	f.UploadedAt = u.now().UTC()

	log.Printf("[file][usecase] start-processing file_id=%s name=%q size=%d", f.ID, f.OriginalName, f.SizeBytes)
	created, err := u.repo.Create(ctx, f)
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordExists) {
			return entities.File{}, ErrFileAlreadyExists
		}
		log.Printf("[file][usecase] file repository create failed file_id=%s err=%v", f.ID, err)
		return entities.File{}, err
	}

	if err := u.extractor.Start(ctx, created.ID); err != nil {
		log.Printf("[file][usecase] extraction start failed file_id=%s err=%v", created.ID, err)
		if _, mErr := u.repo.FinishExtraction(ctx, created.ID, entities.FileStatusFailed, nil, u.now().UTC()); mErr != nil {
			log.Printf("[file][usecase] marking file failed also failed file_id=%s err=%v", created.ID, mErr)
		}
		return entities.File{}, fmt.Errorf("%w: %w", ErrExtractionStartFailed, err)
	}
	log.Printf("[file][usecase] start-processing success file_id=%s status=%s", created.ID, created.Status)
	return created, nil
}

// Upload validates and stores a CAD file, then starts processing it.
func (u *FileUseCase) Upload(ctx context.Context, originalName, mimeType string, size int64, body io.Reader) (entities.File, error) {
	originalName = path.Base(strings.TrimSpace(originalName))
	if !hasSupportedExtension(originalName) {
		return entities.File{}, ErrUnsupportedFileType
	}
	if size > MaxUploadBytes {
		return entities.File{}, ErrFileTooLarge
	}
	if u.storage == nil {
		return entities.File{}, ErrStorageNotConfigured
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "application/octet-stream"
	}

	id := uuid.NewString()
	key := fmt.Sprintf("uploads/%s/%s", id, originalName)
	log.Printf("[file][usecase] upload start file_id=%s key=%s size=%d", id, key, size)

	location, err := u.storage.PutObject(ctx, key, mimeType, size, body)
	if err != nil {
		log.Printf("[file][usecase] storage put failed file_id=%s err=%v", id, err)
		return entities.File{}, fmt.Errorf("%w: %w", ErrStorageUploadFailed, err)
	}

	return u.StartProcessing(ctx, entities.File{
		ID:           id,
		OriginalName: originalName,
		StoragePath:  location,
		SizeBytes:    size,
		MimeType:     mimeType,
	})
}

func (u *FileUseCase) GetByID(ctx context.Context, id string) (entities.File, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.File{}, ErrInvalidFileID
	}

	f, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.File{}, err
	}
	if f.ID == "" {
		return entities.File{}, ErrFileNotFound
	}
	return f, nil
}

func hasSupportedExtension(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, supported := range supportedCADFileExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
