package validator

import (
	"testing"
	"time"

	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaimant struct {
	Email        string     `json:"email" validate:"required,email"`
	ConfirmEmail string     `json:"confirmEmail" validate:"eqfield=Email"`
	Dob          types.Date `json:"dob,omitempty" validate:"omitempty,notfuture"`
}

type testDocument struct {
	FileName string `json:"fileName" validate:"required"`
}

type testRequest struct {
	Description    string          `json:"description" validate:"required,min=10"`
	Amount         decimal.Decimal `json:"amount" validate:"decimalgt=0,decimallte=9999999999999999.99,decimalscale=2"`
	DateOfIncident types.Date      `json:"dateOfIncident" validate:"required,notfuture"`
	Claimant       *testClaimant   `json:"claimant" validate:"required"`
	Documents      []testDocument  `json:"documents,omitempty" validate:"omitempty,dive"`
}

func validRequest() testRequest {
	return testRequest{
		Description:    "Water damage in the kitchen",
		Amount:         decimal.RequireFromString("99.95"),
		DateOfIncident: types.NewDate(time.Now().UTC().AddDate(0, -1, 0)),
		Claimant: &testClaimant{
			Email:        "a@example.com",
			ConfirmEmail: "a@example.com",
		},
		Documents: []testDocument{{FileName: "photo.jpg"}},
	}
}

func TestValidate(t *testing.T) {
	tomorrow := types.NewDate(time.Now().UTC().AddDate(0, 0, 1))

	testCases := []struct {
		name    string
		mutate  func(r *testRequest)
		wantErr map[string]string
	}{
		{
			name:   "valid",
			mutate: func(r *testRequest) {},
		},
		{
			name: "today_is_not_future",
			mutate: func(r *testRequest) {
				r.DateOfIncident = types.Today()
			},
		},
		{
			name:    "zero_amount",
			mutate:  func(r *testRequest) { r.Amount = decimal.Zero },
			wantErr: map[string]string{"amount": "Amount must be greater than zero."},
		},
		{
			name:    "negative_amount",
			mutate:  func(r *testRequest) { r.Amount = decimal.NewFromInt(-5) },
			wantErr: map[string]string{"amount": "Amount must be greater than zero."},
		},
		{
			name:   "two_decimal_places",
			mutate: func(r *testRequest) { r.Amount = decimal.RequireFromString("1500.50") },
		},
		{
			name:   "largest_storable_amount",
			mutate: func(r *testRequest) { r.Amount = decimal.RequireFromString("9999999999999999.99") },
		},
		{
			name:    "below_smallest_unit",
			mutate:  func(r *testRequest) { r.Amount = decimal.RequireFromString("0.001") },
			wantErr: map[string]string{"amount": "Amount must have at most 2 decimal places."},
		},
		{
			name:    "fraction_of_a_cent",
			mutate:  func(r *testRequest) { r.Amount = decimal.RequireFromString("1500.005") },
			wantErr: map[string]string{"amount": "Amount must have at most 2 decimal places."},
		},
		{
			name:    "exceeds_column_precision",
			mutate:  func(r *testRequest) { r.Amount = decimal.RequireFromString("100000000000000000000") },
			wantErr: map[string]string{"amount": "Amount must not exceed 9999999999999999.99."},
		},
		{
			name:    "missing_incident_date",
			mutate:  func(r *testRequest) { r.DateOfIncident = types.Date{} },
			wantErr: map[string]string{"dateOfIncident": "Date of incident is required."},
		},
		{
			name:    "future_incident_date",
			mutate:  func(r *testRequest) { r.DateOfIncident = tomorrow },
			wantErr: map[string]string{"dateOfIncident": "Date of incident cannot be in the future."},
		},
		{
			name:    "future_dob",
			mutate:  func(r *testRequest) { r.Claimant.Dob = tomorrow },
			wantErr: map[string]string{"claimant.dob": "Date of birth cannot be in the future."},
		},
		{
			name:    "nested_email_mismatch",
			mutate:  func(r *testRequest) { r.Claimant.ConfirmEmail = "b@example.com" },
			wantErr: map[string]string{"claimant.confirmEmail": "Confirm email must match email."},
		},
		{
			name:    "document_in_list",
			mutate:  func(r *testRequest) { r.Documents = append(r.Documents, testDocument{}) },
			wantErr: map[string]string{"documents[1].fileName": "Document file name is required."},
		},
		{
			name: "every_violation_reported",
			mutate: func(r *testRequest) {
				r.Description = ""
				r.Amount = decimal.Zero
				r.Claimant = nil
			},
			wantErr: map[string]string{
				"description": "Description is required.",
				"amount":      "Amount must be greater than zero.",
				"claimant":    "Claimant information is required.",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			result := Validate(&req)
			if len(tc.wantErr) == 0 {
				assert.True(t, result.Valid, "unexpected errors: %v", result.Errors)
				return
			}

			assert.False(t, result.Valid)
			got := make(map[string]string, len(result.Errors))
			for _, e := range result.Errors {
				got[e.Field] = e.Message
			}
			assert.Equal(t, tc.wantErr, got)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	req := validRequest()
	require.NoError(t, ValidateRequest(&req))

	req.Amount = decimal.Zero
	err := ValidateRequest(&req)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "Amount must be greater than zero.", ierr.GetDisplayMessage(err))

	details := ierr.GetReportableDetails(err)
	errs, ok := details["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errs, 1)
}

func TestNewValidationErrorWithoutFields(t *testing.T) {
	err := NewValidationError()
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "Request validation failed", ierr.GetDisplayMessage(err))
}
