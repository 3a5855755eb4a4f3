package dberr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorPgx(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:            "ERREUR",
		SeverityUnlocalized: "ERROR",
		Code:                "23505",
		Message:             `duplicate key value violates unique constraint "users_email_key"`,
		Detail:              "Key (email)=(a@example.com) already exists.",
		SchemaName:          "public",
		TableName:           "users",
		ConstraintName:      "users_email_key",
		Routine:             "_bt_check_unique",
		Line:                666,
	}
	wrapped := fmt.Errorf("create user: %w", pgErr)

	rec, err := FromError(wrapped)
	require.NoError(t, err)
	assert.Equal(t, UniqueConstraintViolation, rec.Code)
	assert.Equal(t, "ERROR", *rec.Severity)
	assert.Equal(t, "ERREUR", *rec.SeverityLocal)
	assert.Equal(t, "users", rec.Table())
	assert.Equal(t, "public", rec.Schema())
	assert.Equal(t, "users_email_key", rec.Constraint())
	assert.Equal(t, "_bt_check_unique", rec.Extra["routine"])
	assert.Equal(t, "666", rec.Extra["line"])
	assert.NotContains(t, rec.Extra, "hint")
}

func TestFromErrorPQ(t *testing.T) {
	pqErr := &pq.Error{
		Severity:   "ERROR",
		Code:       "23503",
		Message:    "insert or update on table \"orders\" violates foreign key constraint",
		Detail:     `Key (user_id)=(7) is not present in table "users".`,
		Hint:       "check the user",
		Table:      "orders",
		Constraint: "orders_user_id_fkey",
	}

	rec, err := FromError(pqErr)
	require.NoError(t, err)
	assert.Equal(t, ForeignKeyViolation, rec.Code)
	assert.Equal(t, "orders", rec.Table())
	assert.Equal(t, "orders_user_id_fkey", rec.Constraint())
	assert.Nil(t, rec.SeverityLocal)
	assert.Equal(t, "check the user", rec.Extra["hint"])
}

func TestFromErrorUnknownSQLState(t *testing.T) {
	_, err := FromError(&pgconn.PgError{Code: "XX000", Message: "internal_error"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.False(t, errors.Is(err, ErrNotDatabaseError))
}

func TestFromErrorNotDatabase(t *testing.T) {
	for _, err := range []error{nil, errors.New("boom"), context.DeadlineExceeded} {
		_, got := FromError(err)
		assert.ErrorIs(t, got, ErrNotDatabaseError)
	}
}

func TestCodeOf(t *testing.T) {
	c, ok := CodeOf(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40P01"}))
	require.True(t, ok)
	assert.Equal(t, DeadlockDetected, c)

	c, ok = CodeOf(&pq.Error{Code: "08006"})
	require.True(t, ok)
	assert.Equal(t, ConnectionFailure, c)

	_, ok = CodeOf(&pq.Error{Code: "XX000"})
	assert.False(t, ok)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestFromErrorThroughDatabaseSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("a@example.com").
		WillReturnError(&pq.Error{
			Code:       "23505",
			Message:    "duplicate key value violates unique constraint",
			Detail:     "Key (email)=(a@example.com) already exists.",
			Constraint: "users_email_key",
		})

	_, execErr := db.ExecContext(context.Background(), "INSERT INTO users (email) VALUES ($1)", "a@example.com")
	require.Error(t, execErr)

	rec, err := FromError(execErr)
	require.NoError(t, err)
	assert.Equal(t, UniqueConstraintViolation, rec.Code)
	assert.Equal(t, "users_email_key", rec.Constraint())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgErrorFieldsOmitsEmpty(t *testing.T) {
	m := PgErrorFields(&pgconn.PgError{Code: "42P01", Message: "relation does not exist", Position: 15})
	assert.Equal(t, map[string]any{
		"code":     "42P01",
		"detail":   "",
		"message":  "relation does not exist",
		"position": "15",
	}, m)
}

func TestValidateNilDriverErrors(t *testing.T) {
	var pgErr *pgconn.PgError
	_, err := Validate(pgErr)
	ve := failure(t, err)
	assert.Equal(t, KindInvalidShape, ve.Violations[0].Kind)

	var pqErr *pq.Error
	_, err = Validate(pqErr)
	ve = failure(t, err)
	assert.Equal(t, KindInvalidShape, ve.Violations[0].Kind)
}
