package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/leave"
	"github.com/webwhiz/hrms-backend/internal/handler/http/middleware"
	"github.com/webwhiz/hrms-backend/internal/handler/http/response"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	ListFiltered(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// decodeLeaveBody reads dst from a JSON body, or from the multipart field
// "data" with an optional "attachment" file. The returned closer releases the
// uploaded file and is never nil.
func decodeLeaveBody(r *http.Request, dst any) (*leave.Attachment, io.Closer, error) {
	if !isMultipart(r) {
		return nil, io.NopCloser(nil), json.NewDecoder(r.Body).Decode(dst)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, io.NopCloser(nil), err
	}

	data := r.FormValue("data")
	if data == "" {
		return nil, io.NopCloser(nil), errMissingData
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return nil, io.NopCloser(nil), err
	}

	file, header, err := r.FormFile("attachment")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, io.NopCloser(nil), nil
	}
	if err != nil {
		return nil, io.NopCloser(nil), err
	}

	return attachmentFrom(file, header), file, nil
}

func attachmentFrom(file multipart.File, header *multipart.FileHeader) *leave.Attachment {
	return &leave.Attachment{
		File:     file,
		Filename: header.Filename,
		Size:     header.Size,
	}
}

// Create implements LeaveHandler.
func (l *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequest
	attachment, closer, err := decodeLeaveBody(r, &req)
	defer closer.Close()
	if err != nil {
		slog.Error("CreateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Attachment = attachment

	created, err := l.leaveService.CreateLeave(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", created)
}

// UpdateStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateLeaveStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLeaveStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveID = chi.URLParam(r, "leaveId")
	req.DeciderID = identity.UserID

	decided, err := l.leaveService.UpdateLeaveStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave status updated successfully", decided)
}

// Update implements LeaveHandler.
func (l *LeaveHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateLeaveRequest
	attachment, closer, err := decodeLeaveBody(r, &req)
	defer closer.Close()
	if err != nil {
		slog.Error("UpdateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "leaveId")
	req.RequesterID = identity.UserID
	req.Attachment = attachment

	updated, err := l.leaveService.UpdateLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave updated successfully", updated)
}

// Delete implements LeaveHandler.
func (l *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.leaveService.DeleteLeave(r.Context(), identity.UserID, chi.URLParam(r, "leaveId")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave deleted successfully", nil)
}

// GetByID implements LeaveHandler.
func (l *LeaveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	found, err := l.leaveService.GetLeave(r.Context(), identity.UserID, chi.URLParam(r, "leaveId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ListByUser implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaves, err := l.leaveService.ListLeavesByUser(r.Context(), identity.UserID, chi.URLParam(r, "userId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// ListFiltered implements LeaveHandler.
func (l *LeaveHandlerImpl) ListFiltered(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaves, err := l.leaveService.GetFilteredLeaves(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}
