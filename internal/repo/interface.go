package repo

import (
	"context"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами.
// Field setters report the number of affected rows; a missing id is not an error.
type TaskRepository interface {
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	Create(ctx context.Context, text, label string) (model.Task, error)
	Delete(ctx context.Context, id int64) (int64, error)
	SetState(ctx context.Context, id int64, state model.State) (int64, error)
	SetText(ctx context.Context, id int64, text string) (int64, error)
	SetNote(ctx context.Context, id int64, note string) (int64, error)
	SetDueDate(ctx context.Context, id int64, dueDate *string) (int64, error)
	SetLabel(ctx context.Context, id int64, label string) (int64, error)
}

type CredentialRepository interface {
	Create(ctx context.Context, username, passwordHash string) (model.Credential, error)
	GetByUsername(ctx context.Context, username string) (model.Credential, error)
}
