package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/service"
	"github.com/BuzzLyutic/taskboard/pkg/respond"
)

type BackupHandler struct {
	service *service.BackupService
	logger  *zap.Logger
}

func NewBackupHandler(srv *service.BackupService, logger *zap.Logger) *BackupHandler {
	return &BackupHandler{service: srv, logger: logger}
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	name, err := h.service.Create(r.Context(), service.TriggerManual)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/backups/"+name)
	respond.JSON(w, r, http.StatusCreated, map[string]string{"name": name})
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.List()
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	respond.JSON(w, r, http.StatusOK, map[string][]string{"backups": names})
}

func (h *BackupHandler) Download(w http.ResponseWriter, r *http.Request) {
	path, err := h.service.Path(chi.URLParam(r, "name"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	if err := respond.Attachment(w, r, path); err != nil {
		handleErrors(w, r, h.logger, err)
	}
}
