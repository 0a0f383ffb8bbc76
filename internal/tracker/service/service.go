// Package service implements the owner-scoped workflows behind the
// tracker's REST surface. Validation happens here, before any store
// call; repositories stay thin SQL and the services translate their
// failures into typed errors the handlers can map to status codes.
package service

import (
	"database/sql"
	"errors"
	"strings"

	"jobtrackr/pkg/apperr"
)

// optional trims a request-supplied optional string, collapsing
// empty-after-trim values to nil so the store sees NULL.
func optional(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

// notFoundOrInternal classifies a repository read failure: a missing
// row (which includes rows owned by someone else) is NotFound, anything
// else is Internal.
func notFoundOrInternal(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Newf(apperr.NotFound, "%s not found", what)
	}
	return apperr.Wrap(apperr.Internal, err, "failed to load "+what)
}
