package claimant

import (
	"strings"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Claimant is a person who files claims and holds policies.
// CardNumber, CardExpiry and CardCVV hold ciphertext once persisted; the
// service seals them before writing and opens them after reading.
type Claimant struct {
	ID string `db:"id" json:"id"`

	FirstName     string     `db:"first_name" json:"first_name"`
	MiddleName    string     `db:"middle_name" json:"middle_name"`
	LastName      string     `db:"last_name" json:"last_name"`
	DateOfBirth   types.Date `db:"date_of_birth" json:"date_of_birth"`
	MaritalStatus string     `db:"marital_status" json:"marital_status"`
	Nationality   string     `db:"nationality" json:"nationality"`

	Email        string `db:"email" json:"email"`
	ConfirmEmail string `db:"confirm_email" json:"confirm_email"`
	Phone        string `db:"phone" json:"phone"`
	AltPhone     string `db:"alt_phone" json:"alt_phone"`

	AddressLine1 string `db:"address_line1" json:"address_line1"`
	AddressLine2 string `db:"address_line2" json:"address_line2"`
	City         string `db:"city" json:"city"`
	State        string `db:"state" json:"state"`
	Zip          string `db:"zip" json:"zip"`
	Country      string `db:"country" json:"country"`

	Passport      string `db:"passport" json:"passport"`
	DriverLicense string `db:"driver_license" json:"driver_license"`
	TaxID         string `db:"tax_id" json:"tax_id"`

	CardNumber string `db:"card_number" json:"-"`
	CardExpiry string `db:"card_expiry" json:"-"`
	CardCVV    string `db:"card_cvv" json:"-"`
	CardHolder string `db:"card_holder" json:"card_holder"`

	Notes string `db:"notes" json:"notes"`

	types.BaseModel
}

// FullName joins first and last name the way claim responses show it
func (c *Claimant) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// MaskCardNumber keeps the last four digits of a card number
func MaskCardNumber(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ""
	}
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
