package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

type taskRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"not null"`
	Completed bool      `gorm:"not null;default:false"`
	Note      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:pending"`
	CreatedAt time.Time `gorm:"not null"`
	DueDate   *string   `gorm:"column:due_date"`
	Label     string    `gorm:"not null;default:''"`
}

func (taskRow) TableName() string { return "tasks" }

func (r taskRow) toModel() model.Task {
	return model.Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		Note:      r.Note,
		State:     model.State(r.State),
		CreatedAt: r.CreatedAt,
		DueDate:   r.DueDate,
		Label:     r.Label,
	}
}

type credentialRow struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

func (credentialRow) TableName() string { return "credentials" }

// OpenSQLite opens the database file at path, creating its directory and
// the tables when they are absent.
func OpenSQLite(path string, debug bool) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Один писатель: sqlite блокирует файл целиком.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskRow{}, &credentialRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

// CloseSQLite releases the underlying connection pool.
func CloseSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type SQLiteTaskRepo struct {
	db *gorm.DB
}

func NewSQLiteTaskRepo(db *gorm.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Order("id DESC")
	if filter.State != nil {
		q = q.Where("state = ?", string(*filter.State))
	}

	var rows []taskRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toModel())
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var row taskRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Task{}, ErrorNotFound
		}
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	return row.toModel(), nil
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, text, label string) (model.Task, error) {
	row := taskRow{
		Text:  strings.TrimSpace(text),
		State: string(model.StatePending),
		Label: strings.TrimSpace(label),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return row.toModel(), nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&taskRow{}, "id = ?", id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete task: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SQLiteTaskRepo) SetState(ctx context.Context, id int64, state model.State) (int64, error) {
	return r.update(ctx, id, map[string]any{
		"state":     string(state),
		"completed": state == model.StateCompleted,
	})
}

func (r *SQLiteTaskRepo) SetText(ctx context.Context, id int64, text string) (int64, error) {
	return r.update(ctx, id, map[string]any{"text": strings.TrimSpace(text)})
}

func (r *SQLiteTaskRepo) SetNote(ctx context.Context, id int64, note string) (int64, error) {
	return r.update(ctx, id, map[string]any{"note": strings.TrimSpace(note)})
}

func (r *SQLiteTaskRepo) SetDueDate(ctx context.Context, id int64, dueDate *string) (int64, error) {
	var value any
	if dueDate != nil {
		value = *dueDate
	}
	return r.update(ctx, id, map[string]any{"due_date": value})
}

func (r *SQLiteTaskRepo) SetLabel(ctx context.Context, id int64, label string) (int64, error) {
	return r.update(ctx, id, map[string]any{"label": strings.TrimSpace(label)})
}

func (r *SQLiteTaskRepo) update(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).Model(&taskRow{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("update task: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type SQLiteCredentialRepo struct {
	db *gorm.DB
}

func NewSQLiteCredentialRepo(db *gorm.DB) *SQLiteCredentialRepo {
	return &SQLiteCredentialRepo{db: db}
}

func (r *SQLiteCredentialRepo) Create(ctx context.Context, username, passwordHash string) (model.Credential, error) {
	row := credentialRow{Username: username, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Credential{}, ErrorConflict
		}
		return model.Credential{}, fmt.Errorf("create credential: %w", err)
	}
	return model.Credential{ID: row.ID, Username: row.Username, PasswordHash: row.PasswordHash}, nil
}

func (r *SQLiteCredentialRepo) GetByUsername(ctx context.Context, username string) (model.Credential, error) {
	var row credentialRow
	if err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Credential{}, ErrorNotFound
		}
		return model.Credential{}, fmt.Errorf("get credential: %w", err)
	}
	return model.Credential{ID: row.ID, Username: row.Username, PasswordHash: row.PasswordHash}, nil
}
