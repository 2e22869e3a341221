package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-ranking/internal/domains/book/service"
	"bookstore-ranking/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooksWithTotals(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[BookHandler] list books failed")
		response.QueryError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, books)
}

// ExportBooks - GET /books/export
func (h *Handler) ExportBooks(c *gin.Context) {
	f, err := h.service.ExportBooksToExcel(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[BookHandler] export books failed")
		response.QueryError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("books_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("[BookHandler] write xlsx failed")
	}
}
