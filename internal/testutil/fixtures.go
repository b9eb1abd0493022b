package testutil

import (
	"time"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/shopspring/decimal"
)

// NewClaimantRequest returns a claimant that passes validation
func NewClaimantRequest(email string) *dto.ClaimantRequest {
	return &dto.ClaimantRequest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Dob:          types.NewDate(time.Date(1985, time.December, 10, 0, 0, 0, 0, time.UTC)),
		Email:        email,
		ConfirmEmail: email,
		Phone:        "+1 555 0100",
		City:         "London",
		Country:      "UK",
	}
}

// NewSubmitClaimRequest returns a submission that passes validation
func NewSubmitClaimRequest(policyNumber string) dto.SubmitClaimRequest {
	return dto.SubmitClaimRequest{
		Description:      "Rear-ended at a traffic light on the way to work",
		Amount:           decimal.RequireFromString("1250.50"),
		DateOfIncident:   types.NewDate(time.Now().UTC().AddDate(0, 0, -3)),
		IncidentLocation: "5th Avenue, New York",
		PolicyNumber:     policyNumber,
		Claimant:         NewClaimantRequest("ada@example.com"),
		Documents: []dto.DocumentRequest{
			{FileName: "police-report.pdf", FilePath: "/uploads/police-report.pdf"},
			{FileName: "bumper.jpg", FilePath: "/uploads/bumper.jpg"},
		},
	}
}
