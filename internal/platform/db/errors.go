package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrCheckViolation   = errors.New("value violates a data constraint")
	ErrInvalidState     = errors.New("operation not allowed in the current state")
	ErrInvalidInput     = errors.New("value has an invalid format")
)

// StateError is a domain rule violation on an existing record. It matches
// ErrInvalidState under errors.Is.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

func InvalidState(message string) error {
	return &StateError{Message: message}
}

// DuplicateRule maps a substring of a unique-violation constraint name to the
// message shown to the caller. Rules are tried against the message text only
// when no constraint name matches.
type DuplicateRule struct {
	Match   string
	Message string
}

type DuplicateError struct {
	Constraint string
	Message    string
	Err        error
}

func (e *DuplicateError) Error() string {
	return e.Message
}

func (e *DuplicateError) Unwrap() error {
	return e.Err
}

// Classify translates pgx errors into the errors callers branch on. Errors
// that match nothing are returned unchanged.
func Classify(err error, rules ...DuplicateRule) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		message := "a record with the same unique value already exists"
		if rule, ok := matchRule(rules, pgErr.ConstraintName); ok {
			message = rule.Message
		} else if rule, ok := matchRule(rules, pgErr.Message); ok {
			message = rule.Message
		}
		return &DuplicateError{Constraint: pgErr.ConstraintName, Message: message, Err: err}
	case codeForeignKeyViolation:
		return errors.Join(ErrInvalidReference, err)
	case codeCheckViolation:
		return errors.Join(ErrCheckViolation, err)
	case codeInvalidText:
		return errors.Join(ErrInvalidInput, err)
	}
	return err
}

// matchRule ignores pgErr.Detail, which echoes the submitted value.
func matchRule(rules []DuplicateRule, text string) (DuplicateRule, bool) {
	text = strings.ToLower(text)
	if text == "" {
		return DuplicateRule{}, false
	}
	for _, rule := range rules {
		if strings.Contains(text, strings.ToLower(rule.Match)) {
			return rule, true
		}
	}
	return DuplicateRule{}, false
}
