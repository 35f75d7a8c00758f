package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/backup"
	"github.com/BuzzLyutic/taskboard/internal/repo"
	"github.com/BuzzLyutic/taskboard/internal/service"
	"github.com/BuzzLyutic/taskboard/pkg/respond"
)

func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound), errors.Is(err, backup.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrUsernameTaken):
		respond.Error(w, r, http.StatusConflict, "username already exists")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, r, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrPasswordMismatch):
		respond.Error(w, r, http.StatusBadRequest, "passwords do not match")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, backup.ErrInvalidName):
		respond.Error(w, r, http.StatusBadRequest, "invalid backup name")
	case errors.Is(err, backup.ErrUnsupported):
		respond.Error(w, r, http.StatusNotImplemented, "backups are not supported by the configured store")
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
