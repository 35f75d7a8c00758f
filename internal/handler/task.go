package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/model"
	"github.com/BuzzLyutic/taskboard/internal/service"
	"github.com/BuzzLyutic/taskboard/pkg/respond"
)

// boardBackups is how many recent backups the board lists.
const boardBackups = 3

type TaskHandler struct {
	service *service.TaskService
	backups *service.BackupService
	logger  *zap.Logger
	now     func() time.Time
}

func NewTaskHandler(srv *service.TaskService, backups *service.BackupService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		backups: backups,
		logger:  logger,
		now:     time.Now,
	}
}

type createTaskRequest struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type mutationResponse struct {
	Affected int64 `json:"affected"`
}

type dueDateResponse struct {
	Affected int64   `json:"affected"`
	DueDate  *string `json:"due_date"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.TaskFilter
	if raw := r.URL.Query().Get("state"); raw != "" {
		state, err := service.ParseState(raw)
		if err != nil {
			handleErrors(w, r, h.logger, err)
			return
		}
		filter.State = &state
	}

	tasks, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Board(r.Context())
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	board.Backups = []string{}
	if h.backups != nil {
		recent, err := h.backups.Recent(boardBackups)
		if err != nil {
			h.logger.Warn("failed to list backups", zap.Error(err))
		} else if recent != nil {
			board.Backups = recent
		}
	}
	respond.JSON(w, r, http.StatusOK, board)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	task, err := h.service.Add(r.Context(), req.Text, req.Label)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	h.mutated(w, r)(h.service.Delete(r.Context(), id))
}

func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	id, ok := taskID(w, r)
	if !ok || !decode(w, r, h.logger, &req) {
		return
	}
	h.mutated(w, r)(h.service.Edit(r.Context(), id, req.Text))
}

func (h *TaskHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Note string `json:"note"`
	}
	id, ok := taskID(w, r)
	if !ok || !decode(w, r, h.logger, &req) {
		return
	}
	h.mutated(w, r)(h.service.Annotate(r.Context(), id, req.Note))
}

func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State string `json:"state"`
	}
	id, ok := taskID(w, r)
	if !ok || !decode(w, r, h.logger, &req) {
		return
	}
	h.mutated(w, r)(h.service.Move(r.Context(), id, req.State))
}

func (h *TaskHandler) Relabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	id, ok := taskID(w, r)
	if !ok || !decode(w, r, h.logger, &req) {
		return
	}
	h.mutated(w, r)(h.service.Relabel(r.Context(), id, req.Label))
}

func (h *TaskHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DueDate string `json:"due_date"`
	}
	id, ok := taskID(w, r)
	if !ok || !decode(w, r, h.logger, &req) {
		return
	}

	due, n, err := h.service.Schedule(r.Context(), id, req.DueDate)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, dueDateResponse{Affected: n, DueDate: due})
}

// Calendar renders ?year=&month=; missing or non-numeric values fall back to
// the current year and month.
func (h *TaskHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))

	cal, err := h.service.Calendar(r.Context(), year, month, now)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, cal)
}

func (h *TaskHandler) mutated(w http.ResponseWriter, r *http.Request) func(int64, error) {
	return func(n int64, err error) {
		if err != nil {
			handleErrors(w, r, h.logger, err)
			return
		}
		respond.JSON(w, r, http.StatusOK, mutationResponse{Affected: n})
	}
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func decode(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return false
	}
	return true
}
