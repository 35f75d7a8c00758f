package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `id, text, completed, note, state, created_at, due_date, label`

type TaskRepo struct { // Репозиторий задач поверх PostgreSQL
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	var state *string
	if filter.State != nil {
		s := string(*filter.State)
		state = &s
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE ($1::text IS NULL OR state = $1)
		ORDER BY id DESC
	`, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) Create(ctx context.Context, text, label string) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		INSERT INTO tasks (text, label)
		VALUES ($1, $2)
		RETURNING `+taskColumns,
		strings.TrimSpace(text), strings.TrimSpace(label),
	))
	return t, r.mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return r.exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
}

func (r *TaskRepo) SetState(ctx context.Context, id int64, state model.State) (int64, error) {
	return r.exec(ctx,
		"UPDATE tasks SET state = $2, completed = $3 WHERE id = $1",
		id, string(state), state == model.StateCompleted,
	)
}

func (r *TaskRepo) SetText(ctx context.Context, id int64, text string) (int64, error) {
	return r.exec(ctx, "UPDATE tasks SET text = $2 WHERE id = $1", id, strings.TrimSpace(text))
}

func (r *TaskRepo) SetNote(ctx context.Context, id int64, note string) (int64, error) {
	return r.exec(ctx, "UPDATE tasks SET note = $2 WHERE id = $1", id, strings.TrimSpace(note))
}

func (r *TaskRepo) SetDueDate(ctx context.Context, id int64, dueDate *string) (int64, error) {
	return r.exec(ctx, "UPDATE tasks SET due_date = $2 WHERE id = $1", id, dueDate)
}

func (r *TaskRepo) SetLabel(ctx context.Context, id int64, label string) (int64, error) {
	return r.exec(ctx, "UPDATE tasks SET label = $2 WHERE id = $1", id, strings.TrimSpace(label))
}

// exec выполняет одиночный оператор; отсутствие строки ошибкой не считается
func (r *TaskRepo) exec(ctx context.Context, sql string, args ...any) (int64, error) {
	cmd, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, r.mapError(err)
	}
	return cmd.RowsAffected(), nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var (
		t     model.Task
		state string
	)
	err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.Note, &state, &t.CreatedAt, &t.DueDate, &t.Label)
	t.State = model.State(state)
	return t, err
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
