package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	ListMyEvents(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeOptionalBody parses a JSON body into dst, accepting an empty
// body as the zero value. Check-in and check-out bodies are optional:
// they only carry a target user for delegated action.
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.CheckInRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.CheckOutRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-out recorded", result)
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.attendanceService.Status(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// eventFilterFromQuery parses the shared list parameters.
func eventFilterFromQuery(r *http.Request) (attendance.EventFilter, error) {
	q := r.URL.Query()

	filter := attendance.EventFilter{
		UserID: q.Get("user_id"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}

	return filter, nil
}

// ListMyEvents implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter, err := eventFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Invalid time filter, expected RFC 3339", nil)
		return
	}

	result, err := h.attendanceService.ListMyEvents(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := eventFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Invalid time filter, expected RFC 3339", nil)
		return
	}

	result, err := h.attendanceService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetEvent(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.DeleteEvent(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}
