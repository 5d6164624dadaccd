// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/newsgate/internal/platform/database/schema"
	"github.com/taibuivan/newsgate/internal/platform/dberr"
	"github.com/taibuivan/newsgate/internal/platform/sec"
)

// # Credential Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create inserts a credential row and reads back the generated id and timestamp.

Description: The unique index on login is the source of truth for uniqueness,
so two concurrent sign-ups for the same login cannot both succeed.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: ErrDuplicateLogin on unique violation, wrapped storage errors otherwise
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	table := schema.User
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		table.Table, table.Login, table.Password, table.Role,
		table.ID, table.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Login,
		user.PasswordHash,
		string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateLogin.WithCause(err)
		}
		return dberr.Wrap(err, "postgres_user_repo_create")
	}

	return nil
}

/*
FindByLogin retrieves a credential by its login.

Parameters:
  - context: context.Context
  - login: string

Returns:
  - *User: Hydrated entity, with unknown stored roles normalized to USER
  - error: dberr.ErrNotFound or wrapped storage errors
*/
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	table := schema.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.Login,
	)

	user := &User{}
	var role string

	err := repository.pool.QueryRow(context, query, login).Scan(
		&user.ID,
		&user.Login,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_login")
	}

	user.Role = sec.Role(role).Normalize()
	return user, nil
}
