package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes the services pattern-match on. A unique
// violation on company insert means a concurrent creator won the race;
// a foreign-key violation on delete means the row is still referenced.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
