package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-ranking/internal/domains/ranking/model"
	"bookstore-ranking/internal/domains/ranking/service"
	"bookstore-ranking/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// WeeklyRanking - GET /sales-ranking/weekly/:week/:category
func (h *Handler) WeeklyRanking(c *gin.Context) {
	h.rank(c, model.RankRequest{
		Period:      model.PeriodWeekly,
		Category:    model.Category(c.Param("category")),
		WindowValue: c.Param("week"),
	})
}

// MonthlyRanking - GET /sales-ranking/monthly/:month/:category
func (h *Handler) MonthlyRanking(c *gin.Context) {
	h.rank(c, model.RankRequest{
		Period:      model.PeriodMonthly,
		Category:    model.Category(c.Param("category")),
		WindowValue: c.Param("month"),
	})
}

// YearlyRanking - GET /sales-ranking/yearly/:category (always the current year)
func (h *Handler) YearlyRanking(c *gin.Context) {
	h.rank(c, model.RankRequest{
		Period:   model.PeriodYearly,
		Category: model.Category(c.Param("category")),
	})
}

func (h *Handler) rank(c *gin.Context, req model.RankRequest) {
	entries, err := h.service.Rank(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).
			Str("period", string(req.Period)).
			Str("category", string(req.Category)).
			Msg("[RankingHandler] ranking failed")

		if errors.Is(err, model.ErrUnknownPeriod) {
			response.BadRequest(c, err.Error())
			return
		}
		response.QueryError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}

// ListWeeks - GET /weeks
func (h *Handler) ListWeeks(c *gin.Context) {
	weeks, err := h.service.ListAvailableWeeks(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[RankingHandler] list weeks failed")
		response.QueryError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, weeks)
}

// ListMonths - GET /months
func (h *Handler) ListMonths(c *gin.Context) {
	months, err := h.service.ListAvailableMonths(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[RankingHandler] list months failed")
		response.QueryError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, months)
}
