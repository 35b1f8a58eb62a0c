package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
	mock_interfaces "quote3d/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const testFileID = "2f1b7c1e-6a55-4a8e-9d1f-0d7b7c3a9e11"

func validFile() entities.File {
	return entities.File{
		ID:           testFileID,
		OriginalName: "bracket.step",
		StoragePath:  "uploads/" + testFileID + "/bracket.step",
		SizeBytes:    2048,
		MimeType:     "application/step",
	}
}

func TestFileUseCase_StartProcessing(t *testing.T) {
	fixed := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	t.Run("invalid id", func(t *testing.T) {
		uc := NewFileUseCase(nil, nil, nil)
		f := validFile()
		f.ID = "not-a-uuid"
		if _, err := uc.StartProcessing(context.Background(), f); !errors.Is(err, ErrInvalidFileID) {
			t.Fatalf("expected ErrInvalidFileID, got %v", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := NewFileUseCase(nil, nil, nil)
		f := validFile()
		f.StoragePath = "  "
		if _, err := uc.StartProcessing(context.Background(), f); !errors.Is(err, ErrInvalidFilePayload) {
			t.Fatalf("expected ErrInvalidFilePayload, got %v", err)
		}
	})

	t.Run("success inserts in_process and starts extraction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		extractor := mock_interfaces.NewMockIGeometryExtractor(ctrl)
		uc := NewFileUseCase(repo, nil, extractor)
		uc.now = func() time.Time { return fixed }

		gomock.InOrder(
			repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.File{})).DoAndReturn(
				func(_ context.Context, f entities.File) (entities.File, error) {
					if f.Status != entities.FileStatusInProcess || f.Geometry != nil || f.ProcessedAt != nil {
						t.Fatalf("unexpected file: %+v", f)
					}
					if !f.UploadedAt.Equal(fixed) {
						t.Fatalf("expected uploadedAt %v, got %v", fixed, f.UploadedAt)
					}
					return f, nil
				},
			),
			extractor.EXPECT().Start(gomock.Any(), testFileID).Return(nil),
		)

		res, err := uc.StartProcessing(context.Background(), validFile())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != testFileID || res.Status != entities.FileStatusInProcess {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		extractor := mock_interfaces.NewMockIGeometryExtractor(ctrl)
		uc := NewFileUseCase(repo, nil, extractor)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.File{}, interfaces.ErrRecordExists)

		if _, err := uc.StartProcessing(context.Background(), validFile()); !errors.Is(err, ErrFileAlreadyExists) {
			t.Fatalf("expected ErrFileAlreadyExists, got %v", err)
		}
	})

	t.Run("extraction start failure marks the file failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		extractor := mock_interfaces.NewMockIGeometryExtractor(ctrl)
		uc := NewFileUseCase(repo, nil, extractor)
		uc.now = func() time.Time { return fixed }

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, f entities.File) (entities.File, error) { return f, nil },
		)
		extractor.EXPECT().Start(gomock.Any(), testFileID).Return(errors.New("queue down"))
		repo.EXPECT().FinishExtraction(gomock.Any(), testFileID, entities.FileStatusFailed, nil, fixed).Return(entities.File{}, nil)

		if _, err := uc.StartProcessing(context.Background(), validFile()); !errors.Is(err, ErrExtractionStartFailed) {
			t.Fatalf("expected ErrExtractionStartFailed, got %v", err)
		}
	})
}

func TestFileUseCase_Upload(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		uc := NewFileUseCase(nil, nil, nil)
		_, err := uc.Upload(context.Background(), "part.stl", "model/stl", 10, strings.NewReader("x"))
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		uc := NewFileUseCase(nil, nil, nil)
		_, err := uc.Upload(context.Background(), "part.STEP", "", MaxUploadBytes+1, strings.NewReader("x"))
		if !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		storage := mock_interfaces.NewMockIObjectStorage(ctrl)
		uc := NewFileUseCase(nil, storage, nil)

		storage.EXPECT().PutObject(gomock.Any(), gomock.Any(), "application/octet-stream", int64(3), gomock.Any()).Return("", errors.New("s3"))

		_, err := uc.Upload(context.Background(), "part.stp", "", 3, strings.NewReader("abc"))
		if !errors.Is(err, ErrStorageUploadFailed) {
			t.Fatalf("expected ErrStorageUploadFailed, got %v", err)
		}
	})

	t.Run("success stores under uploads prefix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		storage := mock_interfaces.NewMockIObjectStorage(ctrl)
		extractor := mock_interfaces.NewMockIGeometryExtractor(ctrl)
		uc := NewFileUseCase(repo, storage, extractor)

		var storedKey string
		storage.EXPECT().PutObject(gomock.Any(), gomock.Any(), "application/step", int64(3), gomock.Any()).DoAndReturn(
			func(_ context.Context, key, _ string, _ int64, body io.Reader) (string, error) {
				storedKey = key
				b, _ := io.ReadAll(body)
				if string(b) != "abc" {
					t.Fatalf("unexpected body %q", b)
				}
				return "s3://cad/" + key, nil
			},
		)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, f entities.File) (entities.File, error) { return f, nil },
		)
		extractor.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.Upload(context.Background(), "dir/bracket.step", "application/step", 3, strings.NewReader("abc"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(storedKey, "uploads/"+res.ID+"/") || !strings.HasSuffix(storedKey, "/bracket.step") {
			t.Fatalf("unexpected key %q for file %s", storedKey, res.ID)
		}
		if res.StoragePath != "s3://cad/"+storedKey || res.OriginalName != "bracket.step" {
			t.Fatalf("unexpected file: %+v", res)
		}
	})
}

func TestFileUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewFileUseCase(nil, nil, nil)
		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidFileID) {
			t.Fatalf("expected ErrInvalidFileID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFileRepository(ctrl)
		uc := NewFileUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.File{}, nil)

		if _, err := uc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrFileNotFound) {
			t.Fatalf("expected ErrFileNotFound, got %v", err)
		}
	})
}
