package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUndefinedColumn = "42703"
	pqUndefinedTable  = "42P01"
)

func isSchemaMismatch(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pqUndefinedColumn, pqUndefinedTable:
		return true
	default:
		return false
	}
}
