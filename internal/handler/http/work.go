package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/project"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
	"github.com/webwhiz/hrms-backend/internal/handler/http/middleware"
	"github.com/webwhiz/hrms-backend/internal/handler/http/response"
)

type ProjectHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	AssignableUsers(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListByProject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeleteAttachment(w http.ResponseWriter, r *http.Request)
}

type ProjectHandlerImpl struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) ProjectHandler {
	return &ProjectHandlerImpl{projectService: projectService}
}

// Create implements ProjectHandler.
func (p *ProjectHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req project.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateProject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := p.projectService.CreateProject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Project created successfully", created)
}

// List implements ProjectHandler.
func (p *ProjectHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	projects, err := p.projectService.ListProjects(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, projects)
}

// AssignableUsers implements ProjectHandler.
func (p *ProjectHandlerImpl) AssignableUsers(w http.ResponseWriter, r *http.Request) {
	users, err := p.projectService.ListAssignableUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Update implements ProjectHandler.
func (p *ProjectHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req project.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := p.projectService.UpdateProject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project updated successfully", updated)
}

// Delete implements ProjectHandler.
func (p *ProjectHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := p.projectService.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project deleted successfully", nil)
}

type TaskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &TaskHandlerImpl{taskService: taskService}
}

// openedFiles closes every file opened for one request.
type openedFiles []multipart.File

func (o openedFiles) Close() error {
	for _, f := range o {
		_ = f.Close()
	}
	return nil
}

// decodeTaskBody reads dst from a JSON body, or from the multipart field
// "data" with any number of "attachments" files.
func decodeTaskBody(r *http.Request, dst any) ([]task.Upload, io.Closer, error) {
	if !isMultipart(r) {
		return nil, openedFiles(nil), json.NewDecoder(r.Body).Decode(dst)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, openedFiles(nil), err
	}

	data := r.FormValue("data")
	if data == "" {
		return nil, openedFiles(nil), errMissingData
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return nil, openedFiles(nil), err
	}

	headers := r.MultipartForm.File["attachments"]
	uploads := make([]task.Upload, 0, len(headers))
	opened := make(openedFiles, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, opened, err
		}
		opened = append(opened, f)
		uploads = append(uploads, task.Upload{
			File:        f,
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Size:        h.Size,
		})
	}

	return uploads, opened, nil
}

// Create implements TaskHandler.
func (t *TaskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskRequest
	uploads, closer, err := decodeTaskBody(r, &req)
	defer closer.Close()
	if err != nil {
		slog.Error("CreateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Uploads = uploads

	created, err := t.taskService.CreateTask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created successfully", created)
}

// Update implements TaskHandler.
func (t *TaskHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req task.UpdateTaskRequest
	uploads, closer, err := decodeTaskBody(r, &req)
	defer closer.Close()
	if err != nil {
		slog.Error("UpdateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "taskId")
	req.Uploads = uploads

	updated, err := t.taskService.UpdateTask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task updated successfully", updated)
}

// List implements TaskHandler.
func (t *TaskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := t.taskService.ListTasks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// GetByID implements TaskHandler.
func (t *TaskHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	found, err := t.taskService.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ListByProject implements TaskHandler.
func (t *TaskHandlerImpl) ListByProject(w http.ResponseWriter, r *http.Request) {
	tasks, err := t.taskService.ListByProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// Delete implements TaskHandler.
func (t *TaskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := t.taskService.DeleteTask(r.Context(), chi.URLParam(r, "taskId")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}

// DeleteAttachment implements TaskHandler.
func (t *TaskHandlerImpl) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	updated, err := t.taskService.DeleteAttachment(r.Context(), chi.URLParam(r, "taskId"), chi.URLParam(r, "attachmentId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attachment deleted successfully", updated)
}
