package memory

import (
	"strings"

	ierr "github.com/claimsdesk/claims-service/internal/errors"
)

func notFound(entity, id string) error {
	return ierr.NewErrorf("%s %s not found", strings.ToLower(entity), id).
		WithHintf("%s with ID %s not found", entity, id).
		WithReportableDetails(map[string]any{"id": id}).
		Mark(ierr.ErrNotFound)
}

func alreadyExists(entity, constraint string) error {
	return ierr.NewErrorf("%s violates %s", strings.ToLower(entity), constraint).
		WithHintf("%s already exists", entity).
		WithReportableDetails(map[string]any{"constraint": constraint}).
		Mark(ierr.ErrAlreadyExists)
}

func missingReference(entity, constraint string) error {
	return ierr.NewErrorf("%s violates %s", strings.ToLower(entity), constraint).
		WithHintf("%s references a record that does not exist or is still referenced", entity).
		WithReportableDetails(map[string]any{"constraint": constraint}).
		Mark(ierr.ErrConflict)
}

func newestFirst(aCreated, bCreated int64, aID, bID string) bool {
	if aCreated != bCreated {
		return aCreated > bCreated
	}
	return aID > bID
}
