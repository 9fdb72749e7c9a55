package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые влияют на поведение сервиса
const (
	CodeUndefinedTable       pq.ErrorCode = "42P01"
	CodeUndefinedColumn      pq.ErrorCode = "42703"
	CodeExclusionViolation   pq.ErrorCode = "23P01"
	CodeSerializationFailure pq.ErrorCode = "40001"
)

// Code возвращает код ошибки PostgreSQL из цепочки ошибок
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

func hasCode(err error, code pq.ErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}

// IsUndefinedTable отношение не существует
func IsUndefinedTable(err error) bool {
	return hasCode(err, CodeUndefinedTable)
}

// IsUndefinedColumn столбец не существует
func IsUndefinedColumn(err error) bool {
	return hasCode(err, CodeUndefinedColumn)
}

// IsExclusionViolation нарушено ограничение исключения (пересечение периодов)
func IsExclusionViolation(err error) bool {
	return hasCode(err, CodeExclusionViolation)
}

// IsSerializationFailure конфликт сериализуемой транзакции
func IsSerializationFailure(err error) bool {
	return hasCode(err, CodeSerializationFailure)
}
