package models

import (
	"strings"

	"github.com/invopop/validation"
)

// RentalRequestForm carries the renter details posted from the rentals page.
type RentalRequestForm struct {
	Name        string `form:"name" json:"name"`
	Business    string `form:"business" json:"business"`
	Address     string `form:"address" json:"address"`
	Phone       string `form:"phone" json:"phone"`
	ContactInfo string `form:"contact_info" json:"contact_info"`
	Comments    string `form:"comments" json:"comments"`
}

// Normalize trims the required fields, so whitespace-only input does not
// pass the validation gate.
func (f *RentalRequestForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
}

// Validate checks the required-field preconditions for a submission.
// Business, contact info and comments are optional.
func (f RentalRequestForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Address, validation.Required),
		validation.Field(&f.Phone, validation.Required),
	)
}
