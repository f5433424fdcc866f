package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/domain/leave"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/mocks"
	"github.com/webwhiz/hrms-backend/internal/pkg/jwt"
	"github.com/webwhiz/hrms-backend/internal/pkg/metrics"
)

const (
	testSecret = "test-secret-key-for-jwt"
	managerID  = "0190a000-0000-7000-8000-000000000002"
	employeeID = "0190a000-0000-7000-8000-000000000003"
	otherID    = "0190a000-0000-7000-8000-000000000009"
	leaveID    = "0190a000-0000-7000-8000-0000000000a1"
)

type testServer struct {
	router     *chi.Mux
	jwt        jwt.Service
	users      *mocks.UserRepository
	leaves     *mocks.LeaveService
	attendance *mocks.AttendanceService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	reg := prometheus.NewRegistry()
	s := &testServer{
		jwt:        jwt.NewJWTService(testSecret, "1h", nil),
		users:      new(mocks.UserRepository),
		leaves:     new(mocks.LeaveService),
		attendance: new(mocks.AttendanceService),
	}
	s.users.On("GetByID", mock.Anything, managerID).Return(activeUser(managerID, "Manager"), nil).Maybe()
	s.users.On("GetByID", mock.Anything, employeeID).Return(activeUser(employeeID, "Employee"), nil).Maybe()

	s.router = NewRouter(s.jwt, s.users, Handlers{
		Auth:       NewAuthHandler(nil, nil, "http://localhost:3000"),
		User:       NewUserHandler(nil, nil),
		Leave:      NewLeaveHandler(s.leaves),
		Attendance: NewAttendanceHandler(s.attendance),
		Project:    NewProjectHandler(nil),
		Task:       NewTaskHandler(nil),
		Dashboard:  NewDashboardHandler(nil),
	}, RouterOptions{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
	})
	return s
}

func activeUser(id, roleName string) user.User {
	return user.User{ID: id, Email: "someone@example.com", Status: user.StatusActive, RoleName: roleName}
}

func (s *testServer) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(userID, "someone@example.com", role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/leave/get-filtered-leaves", nil), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeError(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestRouter_RejectsRevokedToken(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, employeeID, "Employee")
	require.NoError(t, s.jwt.RevokeToken(context.Background(), token, time.Now().Add(time.Hour)))

	w := s.do(httptest.NewRequest(http.MethodGet, "/leave/get-filtered-leaves", nil), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	s.leaves.AssertNotCalled(t, "GetFilteredLeaves", mock.Anything, mock.Anything)
}

func TestRouter_RejectsDisabledAccounts(t *testing.T) {
	deletedAt := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		account user.User
		err     error
	}{
		{"deactivated", user.User{ID: otherID, Status: user.StatusInactive, RoleName: "Employee"}, nil},
		{"soft deleted", user.User{ID: otherID, Status: user.StatusInactive, RoleName: "Employee", DeletedAt: &deletedAt}, nil},
		{"removed", user.User{}, user.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.users.On("GetByID", mock.Anything, otherID).Return(tt.account, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{}`))
			w := s.do(req, s.token(t, otherID, "Employee"))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Error.Code)
			s.attendance.AssertNotCalled(t, "CheckIn", mock.Anything, mock.Anything)
		})
	}
}

func TestRouter_UserLookupFailure(t *testing.T) {
	s := newTestServer(t)
	s.users.On("GetByID", mock.Anything, otherID).Return(user.User{}, fmt.Errorf("connection refused"))

	w := s.do(httptest.NewRequest(http.MethodGet, "/leave/get-filtered-leaves", nil), s.token(t, otherID, "Employee"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	s.leaves.AssertNotCalled(t, "GetFilteredLeaves", mock.Anything, mock.Anything)
}

func TestRouter_RoleComesFromStoredUser(t *testing.T) {
	s := newTestServer(t)
	// Demoted after the token was issued.
	s.users.On("GetByID", mock.Anything, otherID).Return(activeUser(otherID, "Employee"), nil)

	req := httptest.NewRequest(http.MethodPatch, "/leave/status/"+leaveID, strings.NewReader(`{"status":"Approved"}`))
	w := s.do(req, s.token(t, otherID, "Manager"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	s.leaves.AssertNotCalled(t, "UpdateLeaveStatus", mock.Anything, mock.Anything)
}

func TestRouter_PermissionChecks(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodDelete, "/attendance/delete-attendance/x", nil), s.token(t, employeeID, "Employee"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, w).Error.Code)

	w = s.do(httptest.NewRequest(http.MethodPatch, "/leave/status/"+leaveID, strings.NewReader(`{"status":"Approved"}`)), s.token(t, employeeID, "Employee"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	s.leaves.AssertNotCalled(t, "UpdateLeaveStatus", mock.Anything, mock.Anything)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.leaves.On("GetFilteredLeaves", mock.Anything, employeeID).Return([]leave.LeaveResponse{}, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/leave/get-filtered-leaves", nil), s.token(t, employeeID, "Employee"))
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/leave/get-filtered-leaves"`)
}

func TestLeaveHandler_CreateMultipart(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("data", `{"startDate":"2025-01-06","endDate":"2025-01-07","reason":"Flu","leaveType":"Sick Leave"}`))
	part, err := mw.CreateFormFile("attachment", "note.pdf")
	require.NoError(t, err)
	_, _ = io.WriteString(part, "%PDF-1.4")
	require.NoError(t, mw.Close())

	s.leaves.On("CreateLeave", mock.Anything, employeeID, mock.MatchedBy(func(req leave.CreateLeaveRequest) bool {
		return req.LeaveType == "Sick Leave" &&
			req.Attachment != nil &&
			req.Attachment.Filename == "note.pdf" &&
			req.Attachment.Size == int64(len("%PDF-1.4"))
	})).Return(leave.LeaveResponse{ID: leaveID, UserID: employeeID, Status: "Pending"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/leave/leave-request", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req, s.token(t, employeeID, "Employee"))

	assert.Equal(t, http.StatusCreated, w.Code)
	s.leaves.AssertExpectations(t)
}

func TestLeaveHandler_CreateJSON(t *testing.T) {
	s := newTestServer(t)
	s.leaves.On("CreateLeave", mock.Anything, employeeID, mock.MatchedBy(func(req leave.CreateLeaveRequest) bool {
		return req.Attachment == nil && req.HalfDays["2025-01-06"] == "first_half"
	})).Return(leave.LeaveResponse{ID: leaveID}, nil)

	body := `{"startDate":"2025-01-06","endDate":"2025-01-06","reason":"Errand","leaveType":"Paid Leave","halfDays":{"2025-01-06":"first_half"}}`
	req := httptest.NewRequest(http.MethodPost, "/leave/leave-request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req, s.token(t, employeeID, "Employee"))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLeaveHandler_CreateMultipartWithoutData(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("reason", "Flu"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/leave/leave-request", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req, s.token(t, employeeID, "Employee"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	s.leaves.AssertNotCalled(t, "CreateLeave", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeaveHandler_UpdateStatusErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{leave.ErrInsufficientBalance, http.StatusConflict, "CONFLICT"},
		{leave.ErrLeaveAlreadyProcessed, http.StatusBadRequest, "DUPLICATE"},
		{leave.ErrNotAuthorized, http.StatusForbidden, "FORBIDDEN"},
		{leave.ErrLeaveNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("failed to deduct leave balance: %w", leave.ErrInsufficientBalance), http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := newTestServer(t)
			s.leaves.On("UpdateLeaveStatus", mock.Anything, leave.UpdateLeaveStatusRequest{
				LeaveID:   leaveID,
				DeciderID: managerID,
				Status:    "Approved",
			}).Return(leave.LeaveResponse{}, tt.err)

			req := httptest.NewRequest(http.MethodPatch, "/leave/status/"+leaveID, strings.NewReader(`{"status":"Approved"}`))
			w := s.do(req, s.token(t, managerID, "Manager"))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Error.Code)
		})
	}
}

func TestAttendanceHandler_CheckInForAnotherUser(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{"userId":"`+otherID+`"}`))
	w := s.do(req, s.token(t, employeeID, "Employee"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	s.attendance.AssertNotCalled(t, "CheckIn", mock.Anything, mock.Anything)
}

func TestAttendanceHandler_CheckInBindsCaller(t *testing.T) {
	s := newTestServer(t)
	s.attendance.On("CheckIn", mock.Anything, mock.MatchedBy(func(req attendance.ClockRequest) bool {
		return req.UserID == employeeID && req.IP != nil && *req.IP == "192.0.2.1"
	})).Return(attendance.AttendanceResponse{UserID: employeeID, Status: "Present"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{}`))
	w := s.do(req, s.token(t, employeeID, "Employee"))

	assert.Equal(t, http.StatusCreated, w.Code)
	s.attendance.AssertExpectations(t)
}

func TestAttendanceHandler_CheckInTwice(t *testing.T) {
	s := newTestServer(t)
	s.attendance.On("CheckIn", mock.Anything, mock.Anything).Return(attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn)

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{"userId":"`+employeeID+`","ip":"10.0.0.5"}`))
	w := s.do(req, s.token(t, employeeID, "Employee"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DUPLICATE", decodeError(t, w).Error.Code)
}

func TestAttendanceHandler_ListByUserDate(t *testing.T) {
	s := newTestServer(t)
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	s.attendance.On("ListByUser", mock.Anything, employeeID, &day).Return([]attendance.AttendanceResponse{}, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/attendance/single-user-attendance/"+employeeID+"?date=2025-01-06", nil), s.token(t, employeeID, "Employee"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/attendance/employeeAttendance/"+employeeID+"?date=06-01-2025", nil), s.token(t, employeeID, "Employee"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_GoogleLoginDisabled(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/user/login/oauth/google", nil), "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, w).Error.Code)
}
