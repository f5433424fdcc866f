package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/handler/http/middleware"
	"github.com/webwhiz/hrms-backend/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	ListScoped(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Approval(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// decodeClock reads a clock request and binds it to the caller. A body
// naming another user is rejected.
func decodeClock(r *http.Request) (attendance.ClockRequest, error) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		return attendance.ClockRequest{}, err
	}

	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return attendance.ClockRequest{}, errInvalidBody{err}
	}

	if req.UserID == "" {
		req.UserID = identity.UserID
	}
	if req.UserID != identity.UserID {
		return attendance.ClockRequest{}, attendance.ErrNotAuthorized
	}
	if req.IP == nil {
		ip := middleware.ClientIP(r)
		req.IP = &ip
	}
	return req, nil
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req, err := decodeClock(r)
	if err != nil {
		writeDecodeError(w, "CheckIn", err)
		return
	}

	record, err := a.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req, err := decodeClock(r)
	if err != nil {
		writeDecodeError(w, "CheckOut", err)
		return
	}

	record, err := a.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// ListByUser implements AttendanceHandler. An optional date=YYYY-MM-DD query
// narrows the result to one day.
func (a *AttendanceHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "date must be YYYY-MM-DD", map[string]string{"date": raw})
			return
		}
		date = &parsed
	}

	records, err := a.attendanceService.ListByUser(r.Context(), chi.URLParam(r, "userId"), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListScoped implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListScoped(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := a.attendanceService.ListScoped(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Update implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.EditorID = identity.UserID

	records, err := a.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", records)
}

// Approval implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Approval(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AttendanceApproval decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ManagerID = identity.UserID

	records, err := a.attendanceService.ApproveOrReject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance decision recorded", records)
}

// Delete implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := a.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}
