package restaurant

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

var streetNumberRegex = regexp.MustCompile(`^[0-9]{1,5}[A-Za-z]?$`)

// Address is a structured postal address. All fields except Unit are required.
type Address struct {
	StreetNumber string
	StreetName   string
	Unit         string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// Validate collects every violation instead of stopping at the first.
func (a Address) Validate() error {
	var errs error
	if strings.TrimSpace(a.StreetNumber) == "" {
		errs = multierr.Append(errs, errors.New("street number cannot be blank"))
	} else if !streetNumberRegex.MatchString(a.StreetNumber) {
		errs = multierr.Append(errs, errors.New("street number must match ^[0-9]{1,5}[A-Za-z]?$"))
	}
	if strings.TrimSpace(a.StreetName) == "" {
		errs = multierr.Append(errs, errors.New("street name cannot be blank"))
	}
	if strings.TrimSpace(a.City) == "" {
		errs = multierr.Append(errs, errors.New("city cannot be blank"))
	}
	if strings.TrimSpace(a.State) == "" {
		errs = multierr.Append(errs, errors.New("state cannot be blank"))
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		errs = multierr.Append(errs, errors.New("postal code cannot be blank"))
	}
	if strings.TrimSpace(a.Country) == "" {
		errs = multierr.Append(errs, errors.New("country cannot be blank"))
	}
	return errs
}
