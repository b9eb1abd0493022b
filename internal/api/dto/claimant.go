package dto

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/claimsdesk/claims-service/internal/validator"
)

// ClaimantRequest creates or updates a claimant. It is also embedded in a
// claim submission.
type ClaimantRequest struct {
	// ClaimantID is only read on update, where it must match the route
	ClaimantID string `json:"claimantId,omitempty"`

	FirstName     string     `json:"firstName" validate:"required,max=100"`
	MiddleName    string     `json:"middleName,omitempty" validate:"omitempty,max=100"`
	LastName      string     `json:"lastName" validate:"required,max=100"`
	Dob           types.Date `json:"dob,omitempty" validate:"omitempty,notfuture" swaggertype:"string" example:"1990-04-12"`
	MaritalStatus string     `json:"maritalStatus,omitempty" validate:"omitempty,max=50"`
	Nationality   string     `json:"nationality,omitempty" validate:"omitempty,max=100"`

	Email        string `json:"email" validate:"required,email,max=254"`
	ConfirmEmail string `json:"confirmEmail" validate:"eqfield=Email"`
	Phone        string `json:"phone" validate:"required,max=30"`
	AltPhone     string `json:"altPhone,omitempty" validate:"omitempty,max=30"`

	AddressLine1 string `json:"addressLine1,omitempty" validate:"omitempty,max=255"`
	AddressLine2 string `json:"addressLine2,omitempty" validate:"omitempty,max=255"`
	City         string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zip          string `json:"zip,omitempty" validate:"omitempty,max=20"`
	Country      string `json:"country,omitempty" validate:"omitempty,max=100"`

	Passport      string `json:"passport,omitempty" validate:"omitempty,max=50"`
	DriverLicense string `json:"driverLicense,omitempty" validate:"omitempty,max=50"`
	TaxID         string `json:"taxId,omitempty" validate:"omitempty,max=50"`

	CardNumber string `json:"cardNumber,omitempty" validate:"omitempty,max=19"`
	CardExpiry string `json:"cardExpiry,omitempty" validate:"omitempty,max=7"`
	CardCVV    string `json:"cardCvv,omitempty" validate:"omitempty,max=4"`
	CardHolder string `json:"cardHolder,omitempty" validate:"omitempty,max=150"`

	Notes string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *ClaimantRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToClaimant maps the request to a new claimant. Card fields are still
// plaintext here.
func (r *ClaimantRequest) ToClaimant(ctx context.Context) *claimant.Claimant {
	c := &claimant.Claimant{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIMANT),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	r.ApplyTo(c)
	return c
}

// ApplyTo copies every request field onto c
func (r *ClaimantRequest) ApplyTo(c *claimant.Claimant) {
	c.FirstName = r.FirstName
	c.MiddleName = r.MiddleName
	c.LastName = r.LastName
	c.DateOfBirth = r.Dob
	c.MaritalStatus = r.MaritalStatus
	c.Nationality = r.Nationality
	c.Email = r.Email
	c.ConfirmEmail = r.ConfirmEmail
	c.Phone = r.Phone
	c.AltPhone = r.AltPhone
	c.AddressLine1 = r.AddressLine1
	c.AddressLine2 = r.AddressLine2
	c.City = r.City
	c.State = r.State
	c.Zip = r.Zip
	c.Country = r.Country
	c.Passport = r.Passport
	c.DriverLicense = r.DriverLicense
	c.TaxID = r.TaxID
	c.CardNumber = r.CardNumber
	c.CardExpiry = r.CardExpiry
	c.CardCVV = r.CardCVV
	c.CardHolder = r.CardHolder
	c.Notes = r.Notes
}

// ClaimantResponse never carries the CVV and masks the card number
type ClaimantResponse struct {
	ClaimantID    string     `json:"claimantId"`
	FirstName     string     `json:"firstName"`
	MiddleName    string     `json:"middleName,omitempty"`
	LastName      string     `json:"lastName"`
	Dob           types.Date `json:"dob" swaggertype:"string"`
	MaritalStatus string     `json:"maritalStatus,omitempty"`
	Nationality   string     `json:"nationality,omitempty"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	AltPhone      string     `json:"altPhone,omitempty"`
	AddressLine1  string     `json:"addressLine1,omitempty"`
	AddressLine2  string     `json:"addressLine2,omitempty"`
	City          string     `json:"city,omitempty"`
	State         string     `json:"state,omitempty"`
	Zip           string     `json:"zip,omitempty"`
	Country       string     `json:"country,omitempty"`
	Passport      string     `json:"passport,omitempty"`
	DriverLicense string     `json:"driverLicense,omitempty"`
	TaxID         string     `json:"taxId,omitempty"`
	CardNumber    string     `json:"cardNumber,omitempty" example:"************1111"`
	CardExpiry    string     `json:"cardExpiry,omitempty"`
	CardHolder    string     `json:"cardHolder,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	IsDeleted     bool       `json:"isDeleted"`
}

// NewClaimantResponse expects c with its card fields already opened
func NewClaimantResponse(c *claimant.Claimant) *ClaimantResponse {
	if c == nil {
		return nil
	}
	return &ClaimantResponse{
		ClaimantID:    c.ID,
		FirstName:     c.FirstName,
		MiddleName:    c.MiddleName,
		LastName:      c.LastName,
		Dob:           c.DateOfBirth,
		MaritalStatus: c.MaritalStatus,
		Nationality:   c.Nationality,
		Email:         c.Email,
		Phone:         c.Phone,
		AltPhone:      c.AltPhone,
		AddressLine1:  c.AddressLine1,
		AddressLine2:  c.AddressLine2,
		City:          c.City,
		State:         c.State,
		Zip:           c.Zip,
		Country:       c.Country,
		Passport:      c.Passport,
		DriverLicense: c.DriverLicense,
		TaxID:         c.TaxID,
		CardNumber:    claimant.MaskCardNumber(c.CardNumber),
		CardExpiry:    c.CardExpiry,
		CardHolder:    c.CardHolder,
		Notes:         c.Notes,
		IsDeleted:     c.IsDeleted,
	}
}

type ListClaimantsResponse = types.ListResponse[*ClaimantResponse]
