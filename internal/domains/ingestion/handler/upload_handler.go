package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-ranking/internal/domains/ingestion/model"
	"bookstore-ranking/internal/domains/ingestion/service"
	"bookstore-ranking/internal/shared/response"
)

// FormField is the multipart field carrying the uploaded file.
const FormField = "file"

type Handler struct {
	service service.ServiceInterface
	tempDir string
}

// NewHandler - tempDir "" means os.TempDir()
func NewHandler(service service.ServiceInterface, tempDir string) *Handler {
	return &Handler{service: service, tempDir: tempDir}
}

type ingestFunc func(ctx context.Context, r io.Reader, source string) (*model.BatchResult, error)

// UploadCatalog - POST /upload
func (h *Handler) UploadCatalog(c *gin.Context) {
	h.upload(c, model.KindCatalog, h.service.IngestCatalog)
}

// UploadSales - POST /upload-sales
func (h *Handler) UploadSales(c *gin.Context) {
	h.upload(c, model.KindSales, h.service.IngestSales)
}

func (h *Handler) upload(c *gin.Context, kind model.Kind, ingest ingestFunc) {
	header, err := c.FormFile(FormField)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("[UploadHandler] upload too large")
		response.Text(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("[UploadHandler] missing upload file")
		response.BadRequest(c, fmt.Sprintf("multipart field %q is required", FormField))
		return
	}

	log.Info().
		Str("kind", string(kind)).
		Str("file_name", header.Filename).
		Int64("file_size", header.Size).
		Msg("[UploadHandler] received upload")

	tmp, err := h.spool(header)
	if err != nil {
		log.Error().Err(err).Str("file_name", header.Filename).Msg("[UploadHandler] spooling upload failed")
		response.Text(c, http.StatusInternalServerError, err.Error())
		return
	}
	defer h.release(tmp)

	// Rows are committed one by one; a client hanging up must not stop the
	// batch halfway through.
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := ingest(ctx, tmp, header.Filename)
	if err != nil {
		log.Error().Err(err).Str("file_name", header.Filename).Msg("[UploadHandler] ingestion failed")
		response.Text(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Text(c, http.StatusOK, result.Summary())
}

// spool copies the multipart part into a private temp file positioned at offset 0.
func (h *Handler) spool(header *multipart.FileHeader) (*os.File, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %w", model.ErrUnreadableInput, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(h.tempDir, "bookrank-upload-*.csv")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		h.release(tmp)
		return nil, fmt.Errorf("%w: copy upload: %w", model.ErrUnreadableInput, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		h.release(tmp)
		return nil, fmt.Errorf("rewind temp file: %w", err)
	}

	return tmp, nil
}

func (h *Handler) release(f *os.File) {
	_ = f.Close()
	if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", f.Name()).Msg("[UploadHandler] temp file not removed")
	}
}
