package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/report"
	"github.com/chronos-hq/chronos-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	MyStats(w http.ResponseWriter, r *http.Request)
	UserStats(w http.ResponseWriter, r *http.Request)
	TeamStats(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// statsQueryFromRequest parses the aggregation query parameters shared
// by every stats endpoint. Malformed values are rejected, not coerced.
func statsQueryFromRequest(r *http.Request) (report.StatsQuery, error) {
	q := r.URL.Query()

	query := report.StatsQuery{
		Period:    q.Get("period"),
		Reference: q.Get("reference"),
	}

	if raw := q.Get("tolerance_minutes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("tolerance_minutes must be an integer")
		}
		query.ToleranceMinutes = n
	}

	if raw := q.Get("include_open_shift"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return query, fmt.Errorf("include_open_shift must be a boolean")
		}
		query.IncludeOpenShift = b
	}

	return query, nil
}

// MyStats implements ReportHandler.
func (h *reportHandlerImpl) MyStats(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	query, err := statsQueryFromRequest(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.MyStats(r.Context(), principal, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UserStats implements ReportHandler.
func (h *reportHandlerImpl) UserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	query, err := statsQueryFromRequest(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.UserStats(r.Context(), userID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamStats implements ReportHandler.
func (h *reportHandlerImpl) TeamStats(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")

	query, err := statsQueryFromRequest(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.TeamStats(r.Context(), teamID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
