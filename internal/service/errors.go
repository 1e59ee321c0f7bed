package service

import (
	"errors"
	"fmt"
)

// handler가 HTTP status로 매핑하는 에러 종류
var (
	// ErrValidation - 필수 값 누락, 잘못된 쿼리 파라미터 등 (400)
	ErrValidation = errors.New("validation error")
	// ErrNotFound - 참조한 레코드가 없음 (404)
	ErrNotFound = errors.New("not found")
	// ErrProviderNotConfigured - completion provider 자격 증명 없음 (400)
	ErrProviderNotConfigured = errors.New("AI_API_KEY not set")
)

// kindError carries a client-facing message while matching its sentinel via errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func validationError(format string, args ...any) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func notFoundError(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}
