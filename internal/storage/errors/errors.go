// Package errors provides custom errors for types implementing storage interfaces.
package errors

import (
	"fmt"
)

type (
	NotFoundError struct {
		Entity string
		Key    string
		Err    error
	}
	AlreadyExistsError struct {
		Entity string
		Key    string
		Err    error
	}
	ContextTimeoutExceededError struct {
		Err error
	}
	StatementSQLError struct {
		Err error
	}
	ScanningSQLError struct {
		Err error
	}
	ExecutionSQLError struct {
		Err error
	}
	MigrationSQLError struct {
		Err error
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found in storage", e.Entity, e.Key)
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %s: already exists in storage", e.Entity, e.Key)
}

func (e *ContextTimeoutExceededError) Error() string {
	return fmt.Sprintf("%s: context timeout exceeded", e.Err.Error())
}

func (e *StatementSQLError) Error() string {
	return fmt.Sprintf("%s: could not compile statement", e.Err.Error())
}

func (e *ScanningSQLError) Error() string {
	return fmt.Sprintf("%s: could not scan rows", e.Err.Error())
}

func (e *ExecutionSQLError) Error() string {
	return fmt.Sprintf("%s: could not query", e.Err.Error())
}

func (e *MigrationSQLError) Error() string {
	return fmt.Sprintf("%s: could not migrate schema", e.Err.Error())
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *AlreadyExistsError) Unwrap() error {
	return e.Err
}

func (e *ContextTimeoutExceededError) Unwrap() error {
	return e.Err
}

func (e *StatementSQLError) Unwrap() error {
	return e.Err
}

func (e *ScanningSQLError) Unwrap() error {
	return e.Err
}

func (e *ExecutionSQLError) Unwrap() error {
	return e.Err
}

func (e *MigrationSQLError) Unwrap() error {
	return e.Err
}
