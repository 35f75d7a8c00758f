package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

type CredentialRepo struct {
	pool *pgxpool.Pool
}

func NewCredentialRepo(pool *pgxpool.Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

func (r *CredentialRepo) Create(ctx context.Context, username, passwordHash string) (model.Credential, error) {
	c := model.Credential{Username: username, PasswordHash: passwordHash}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO credentials (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, username, passwordHash).Scan(&c.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return c, ErrorConflict
	}
	return c, err
}

func (r *CredentialRepo) GetByUsername(ctx context.Context, username string) (model.Credential, error) {
	var c model.Credential
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash
		FROM credentials
		WHERE username = $1
	`, username).Scan(&c.ID, &c.Username, &c.PasswordHash)

	if errors.Is(err, pgx.ErrNoRows) {
		return c, ErrorNotFound
	}
	return c, err
}
