package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/handler/http/middleware"
	"github.com/webwhiz/hrms-backend/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Directory(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	AddRole(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
	roleService role.RoleService
}

func NewUserHandler(userService user.UserService, roleService role.RoleService) UserHandler {
	return &UserHandlerImpl{
		userService: userService,
		roleService: roleService,
	}
}

// List implements UserHandler.
func (u *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	users, err := u.userService.ListUsers(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Directory implements UserHandler.
func (u *UserHandlerImpl) Directory(w http.ResponseWriter, r *http.Request) {
	users, err := u.userService.ListDirectory(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Profile implements UserHandler.
func (u *UserHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := u.userService.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// UpdateProfile implements UserHandler.
func (u *UserHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "userId")

	users, err := u.userService.UpdateProfile(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", users)
}

// UpdatePassword implements UserHandler.
func (u *UserHandlerImpl) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "userId")

	if err := u.userService.UpdatePassword(r.Context(), identity.UserID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password updated successfully", nil)
}

// UpdateStatus implements UserHandler.
func (u *UserHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	users, err := u.userService.UpdateStatus(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Status updated successfully", users)
}

// Delete implements UserHandler.
func (u *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	users, err := u.userService.DeleteUser(r.Context(), identity.UserID, chi.URLParam(r, "userId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted successfully", users)
}

// AddRole implements UserHandler.
func (u *UserHandlerImpl) AddRole(w http.ResponseWriter, r *http.Request) {
	var req role.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := u.roleService.AddRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created successfully", created)
}

// ListRoles implements UserHandler.
func (u *UserHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := u.roleService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roles)
}
