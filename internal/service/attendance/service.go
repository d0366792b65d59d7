package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
)

type AttendanceServiceImpl struct {
	attendance.EventRepository
	authorizer attendance.Authorizer
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	authorizer attendance.Authorizer,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		EventRepository: eventRepo,
		authorizer:      authorizer,
	}
}

// targetUser resolves the user an event is recorded for: the explicit
// request target, or the principal themselves.
func targetUser(principal attendance.Principal, requested string) string {
	if requested != "" {
		return requested
	}
	return principal.UserID
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, principal attendance.Principal, req attendance.CheckInRequest) (attendance.EventResponse, error) {
	target := targetUser(principal, req.UserID)

	if err := a.authorizer.CanActFor(ctx, principal, target); err != nil {
		return attendance.EventResponse{}, err
	}

	event, err := a.EventRepository.Append(ctx, target, attendance.CheckIn)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return mapEventToResponse(event), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, principal attendance.Principal, req attendance.CheckOutRequest) (attendance.EventResponse, error) {
	target := targetUser(principal, req.UserID)

	if err := a.authorizer.CanActFor(ctx, principal, target); err != nil {
		return attendance.EventResponse{}, err
	}

	event, err := a.EventRepository.Append(ctx, target, attendance.CheckOut)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return mapEventToResponse(event), nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, principal attendance.Principal) (attendance.StatusResponse, error) {
	latest, err := a.EventRepository.LatestForUser(ctx, principal.UserID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("get latest event: %w", err)
	}

	if latest == nil || latest.Type != attendance.CheckIn {
		return attendance.StatusResponse{CheckedIn: false}, nil
	}

	since := latest.CreatedAt.Format(time.RFC3339)
	return attendance.StatusResponse{CheckedIn: true, Since: &since}, nil
}

// ListMyEvents implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMyEvents(ctx context.Context, principal attendance.Principal, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	filter.UserID = principal.UserID
	return a.ListEvents(ctx, filter)
}

// ListEvents implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListEvents(ctx context.Context, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}

	events, total, err := a.EventRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("list events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, mapEventToResponse(ev))
	}

	return attendance.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Events:     responses,
	}, nil
}

// GetEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetEvent(ctx context.Context, id string) (attendance.EventResponse, error) {
	event, err := a.EventRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	return mapEventToResponse(event), nil
}

// UpdateEvent implements attendance.AttendanceService.
// This lets admins fix wrong historical data. The alternation
// invariant is not re-validated here; reconstruction tolerates
// whatever this produces.
func (a *AttendanceServiceImpl) UpdateEvent(ctx context.Context, req attendance.UpdateEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	event, err := a.EventRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if req.Type != nil {
		event.Type = attendance.EventType(*req.Type)
	}
	if req.CreatedAt != nil {
		createdAt, err := time.Parse(time.RFC3339, *req.CreatedAt)
		if err != nil {
			return attendance.EventResponse{}, fmt.Errorf("parse created_at: %w", err)
		}
		event.CreatedAt = createdAt
	}

	if err := a.EventRepository.Update(ctx, event); err != nil {
		return attendance.EventResponse{}, err
	}

	return mapEventToResponse(event), nil
}

// DeleteEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	return a.EventRepository.Delete(ctx, id)
}

// mapEventToResponse converts an Event entity to EventResponse
func mapEventToResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:        ev.ID,
		UserID:    ev.UserID,
		Type:      string(ev.Type),
		CreatedAt: ev.CreatedAt.Format(time.RFC3339),
	}
}
