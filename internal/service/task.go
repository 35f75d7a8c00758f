package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/calendar"
	"github.com/BuzzLyutic/taskboard/internal/metrics"
	"github.com/BuzzLyutic/taskboard/internal/model"
	"github.com/BuzzLyutic/taskboard/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

type TaskService struct {
	repo    repo.TaskRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewTaskService(repo repo.TaskRepository, logger *zap.Logger, m *metrics.Metrics) *TaskService {
	return &TaskService{repo: repo, logger: logger, metrics: m}
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

// Board splits all tasks into per-state columns, keeping newest first.
func (s *TaskService) Board(ctx context.Context) (model.Board, error) {
	tasks, err := s.repo.List(ctx, model.TaskFilter{})
	if err != nil {
		return model.Board{}, err
	}

	board := model.Board{
		Pending:    []model.Task{},
		InProgress: []model.Task{},
		Completed:  []model.Task{},
	}
	for _, t := range tasks {
		switch t.State {
		case model.StatePending:
			board.Pending = append(board.Pending, t)
		case model.StateInProgress:
			board.InProgress = append(board.InProgress, t)
		case model.StateCompleted:
			board.Completed = append(board.Completed, t)
		}
	}
	return board, nil
}

func (s *TaskService) Add(ctx context.Context, text, label string) (model.Task, error) {
	text, err := requireText(text) // Валидация текста задачи
	if err != nil {
		return model.Task{}, err
	}

	t, err := s.repo.Create(ctx, text, strings.TrimSpace(label))
	if err != nil {
		return t, err
	}
	s.metrics.TaskMutation("create", 1)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	return s.observe("delete", id, n, err)
}

func (s *TaskService) Move(ctx context.Context, id int64, rawState string) (int64, error) {
	state, err := ParseState(rawState)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.SetState(ctx, id, state)
	return s.observe("set_state", id, n, err)
}

func (s *TaskService) Edit(ctx context.Context, id int64, text string) (int64, error) {
	text, err := requireText(text)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.SetText(ctx, id, text)
	return s.observe("set_text", id, n, err)
}

func (s *TaskService) Annotate(ctx context.Context, id int64, note string) (int64, error) {
	n, err := s.repo.SetNote(ctx, id, strings.TrimSpace(note))
	return s.observe("set_note", id, n, err)
}

func (s *TaskService) Relabel(ctx context.Context, id int64, label string) (int64, error) {
	n, err := s.repo.SetLabel(ctx, id, strings.TrimSpace(label))
	return s.observe("set_label", id, n, err)
}

// Schedule sets the due date. Input that is not a valid date clears it
// instead of failing the request; the stored value is returned.
func (s *TaskService) Schedule(ctx context.Context, id int64, raw string) (*string, int64, error) {
	var due *string
	if d, ok := ParseDueDate(raw); ok {
		due = &d
	} else if strings.TrimSpace(raw) != "" {
		s.logger.Info("discarding malformed due date", zap.Int64("task_id", id), zap.String("input", raw))
	}

	n, err := s.repo.SetDueDate(ctx, id, due)
	n, err = s.observe("set_due_date", id, n, err)
	return due, n, err
}

func (s *TaskService) Calendar(ctx context.Context, year, month int, now time.Time) (calendar.Month, error) {
	tasks, err := s.repo.List(ctx, model.TaskFilter{})
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.Build(tasks, calendar.Normalize(year, month), now), nil
}

func (s *TaskService) observe(op string, id, affected int64, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		s.logger.Debug("mutation matched no task", zap.String("operation", op), zap.Int64("task_id", id))
	}
	s.metrics.TaskMutation(op, affected)
	return affected, nil
}
