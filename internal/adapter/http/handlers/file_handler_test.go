package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quote3d/internal/adapter/http/handlers/mocks"
	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const testFileID = "9d3c5e0a-7a9e-4a43-9f1b-6c8a1f0f4e21"

func newFileRouter(uc usecase.IFileUseCase, now time.Time) *gin.Engine {
	h := NewFileHandler(uc)
	h.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/api/files/startProcessing", h.StartProcessing)
	r.POST("/api/files/upload", h.Upload)
	r.GET("/api/files/:id", h.GetFile)
	return r
}

func TestFileHandler_StartProcessing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := fmt.Sprintf(`{"id":%q,"originalName":"part.step","storagePath":"s3://b/k","sizeBytes":10,"mimeType":"model/step"}`, testFileID)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)

		w := performJSON(newFileRouter(uc, time.Now()), http.MethodPost, "/api/files/startProcessing", "{")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)

		uc.EXPECT().StartProcessing(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f entities.File) (entities.File, error) {
				if f.ID != testFileID || f.SizeBytes != 10 {
					t.Fatalf("unexpected file: %+v", f)
				}
				f.Status = entities.FileStatusInProcess
				return f, nil
			})

		w := performJSON(newFileRouter(uc, time.Now()), http.MethodPost, "/api/files/startProcessing", body)
		expectStatus(t, w, http.StatusAccepted)
		if !bytes.Contains(w.Body.Bytes(), []byte(`"status":"in_process"`)) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("extraction start failure is 500 with message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)

		uc.EXPECT().StartProcessing(gomock.Any(), gomock.Any()).
			Return(entities.File{}, fmt.Errorf("%w: boom", usecase.ErrExtractionStartFailed))

		w := performJSON(newFileRouter(uc, time.Now()), http.MethodPost, "/api/files/startProcessing", body)
		expectStatus(t, w, http.StatusInternalServerError)
		if got := decodeError(t, w); got.Message != "Geometry data extraction failed" {
			t.Fatalf("unexpected message: %q", got.Message)
		}
	})
}

func TestFileHandler_Upload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	multipartBody := func(t *testing.T, name string) (*bytes.Buffer, string) {
		t.Helper()
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		part, err := mw.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write([]byte("ISO-10303-21;"))
		_ = mw.Close()
		return buf, mw.FormDataContentType()
	}

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)

		w := performJSON(newFileRouter(uc, time.Now()), http.MethodPost, "/api/files/upload", "")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unsupported type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)
		uc.EXPECT().Upload(gomock.Any(), "part.stl", gomock.Any(), int64(13), gomock.Any()).
			Return(entities.File{}, usecase.ErrUnsupportedFileType)

		body, contentType := multipartBody(t, "part.stl")
		req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newFileRouter(uc, time.Now()).ServeHTTP(w, req)

		expectStatus(t, w, http.StatusBadRequest)
		if got := decodeError(t, w); got.Code != "UNSUPPORTED_FILE_TYPE" {
			t.Fatalf("unexpected code: %q", got.Code)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)
		uc.EXPECT().Upload(gomock.Any(), "part.step", gomock.Any(), int64(13), gomock.Any()).
			Return(entities.File{ID: testFileID, Status: entities.FileStatusInProcess}, nil)

		body, contentType := multipartBody(t, "part.step")
		req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newFileRouter(uc, time.Now()).ServeHTTP(w, req)

		expectStatus(t, w, http.StatusAccepted)
	})
}

func TestFileHandler_GetFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uploaded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), testFileID).Return(entities.File{}, usecase.ErrFileNotFound)

		w := performJSON(newFileRouter(uc, uploaded), http.MethodGet, "/api/files/"+testFileID, "")
		expectStatus(t, w, http.StatusNotFound)
		decodeError(t, w)
	})

	t.Run("internal error hides cause", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), testFileID).Return(entities.File{}, errors.New("dynamodb exploded"))

		w := performJSON(newFileRouter(uc, uploaded), http.MethodGet, "/api/files/"+testFileID, "")
		expectStatus(t, w, http.StatusInternalServerError)
		if bytes.Contains(w.Body.Bytes(), []byte("dynamodb")) {
			t.Fatalf("expected cause to be hidden, got %s", w.Body.String())
		}
	})

	t.Run("done with properties", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFileUseCase(ctrl)
		processed := uploaded.Add(6 * time.Second)
		uc.EXPECT().GetByID(gomock.Any(), testFileID).Return(entities.File{
			ID:          testFileID,
			Status:      entities.FileStatusDone,
			Geometry:    &entities.GeometryProperties{VolumeCm3: 2812.5},
			UploadedAt:  uploaded,
			ProcessedAt: &processed,
		}, nil)

		w := performJSON(newFileRouter(uc, uploaded.Add(time.Minute)), http.MethodGet, "/api/files/"+testFileID, "")
		expectStatus(t, w, http.StatusOK)
		if !bytes.Contains(w.Body.Bytes(), []byte(`"processingTimeMs":6000`)) || !bytes.Contains(w.Body.Bytes(), []byte(`"volumeCm3":2812.5`)) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
