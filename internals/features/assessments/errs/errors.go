// file: internals/features/assessments/errs/errors.go
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

/* =========================================================
   Taksonomi error assessment engine.
   Semua error terminal untuk operasi berjalan; controller
   memetakan lewat StatusCode() (helper.JsonAppError).
========================================================= */

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string   { return e.Msg }
func (e *NotFoundError) StatusCode() int { return fiber.StatusNotFound }

func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError membawa index soal yang bermasalah (-1 kalau bukan
// error per-soal).
type ValidationError struct {
	Msg           string
	QuestionIndex int
}

func (e *ValidationError) Error() string {
	if e.QuestionIndex >= 0 {
		return fmt.Sprintf("soal ke-%d: %s", e.QuestionIndex+1, e.Msg)
	}
	return e.Msg
}
func (e *ValidationError) StatusCode() int { return fiber.StatusUnprocessableEntity }

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...), QuestionIndex: -1}
}

func ValidationAt(questionIndex int, format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...), QuestionIndex: questionIndex}
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string   { return e.Msg }
func (e *ConflictError) StatusCode() int { return fiber.StatusConflict }

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

type LimitExceededError struct {
	Msg string
}

func (e *LimitExceededError) Error() string   { return e.Msg }
func (e *LimitExceededError) StatusCode() int { return fiber.StatusTooManyRequests }

func LimitExceeded(format string, args ...any) *LimitExceededError {
	return &LimitExceededError{Msg: fmt.Sprintf(format, args...)}
}

type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string   { return e.Msg }
func (e *AuthorizationError) StatusCode() int { return fiber.StatusForbidden }

func Authorization(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

/* =========================================================
   Deteksi error postgres (SQLSTATE) — dipakai service/controller
   untuk menerjemahkan pelanggaran constraint jadi Conflict.
========================================================= */

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
