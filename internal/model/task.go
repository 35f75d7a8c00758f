package model

import "time"

type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// States lists every lifecycle state in board column order.
var States = []State{StatePending, StateInProgress, StateCompleted}

func (s State) Valid() bool {
	switch s {
	case StatePending, StateInProgress, StateCompleted:
		return true
	}
	return false
}

type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Note      string    `json:"note"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	DueDate   *string   `json:"due_date"`
	Label     string    `json:"label"`
}

type TaskFilter struct {
	State *State
}

// Board is the task list split into one column per state, newest first.
type Board struct {
	Pending    []Task   `json:"pending"`
	InProgress []Task   `json:"in_progress"`
	Completed  []Task   `json:"completed"`
	Backups    []string `json:"backups"`
}

type Credential struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
