package service

import (
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/types"
)

// withStage tags err with the submission stage that produced it
func withStage(err error, stage types.SubmissionStage) error {
	if err == nil {
		return nil
	}
	return ierr.WithError(err).
		WithReportableDetails(map[string]any{"stage": stage}).
		Error()
}

// asDatabaseError marks storage failures that carry no sentinel yet
func asDatabaseError(err error, hint string) error {
	if err == nil {
		return nil
	}
	if ierr.IsUnexpected(err) && !ierr.IsDatabase(err) {
		return ierr.WithError(err).
			WithHint(hint).
			Mark(ierr.ErrDatabase)
	}
	return err
}

// claimantLocked rejects moving a policy that claims already hang off
func claimantLocked(id string, claims int) error {
	return ierr.NewErrorf("policy %s is referenced by %d claim(s)", id, claims).
		WithHintf("Policy with ID %s cannot change claimant while claims reference it", id).
		WithReportableDetails(map[string]any{
			"id":     id,
			"claims": claims,
		}).
		Mark(ierr.ErrConflict)
}

// stillReferenced builds the restrict-delete error
func stillReferenced(entity, id string, claims int) error {
	return ierr.NewErrorf("%s %s is referenced by %d claim(s)", entity, id, claims).
		WithHintf("%s with ID %s cannot be deleted while claims reference it", entity, id).
		WithReportableDetails(map[string]any{
			"id":     id,
			"claims": claims,
		}).
		Mark(ierr.ErrConflict)
}
