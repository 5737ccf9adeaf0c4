package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"climate-monitor/internal/infra/httpserver"
	"climate-monitor/internal/monitor/httpapi/internal"
	"climate-monitor/internal/monitor/usecases"
)

func NewReadingController(service usecases.ReadingService) *ReadingController {
	return &ReadingController{
		service: service,
	}
}

var _ httpserver.Controller = (*ReadingController)(nil)

type ReadingController struct {
	service usecases.ReadingService
}

func (c *ReadingController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/readings/latest", c.latest())
	router.Handle("GET /v1/readings", c.list())
}

func (c *ReadingController) latest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evaluation, err := c.service.Latest(r.Context())
		if errors.Is(err, usecases.ErrReadingNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, "no readings yet")
			return
		}
		if err != nil {
			slog.Error("getting latest reading", slog.Any("error", err))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromEvaluation(evaluation))
	}
}

func (c *ReadingController) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := httpserver.GetQueryParamInt(r, "limit", usecases.DefaultRecentLimit)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}

		evaluations, err := c.service.Recent(r.Context(), limit)
		if err != nil {
			slog.Error("listing readings", slog.Any("error", err))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromEvaluations(evaluations))
	}
}
