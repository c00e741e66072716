package service

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

var (
	licenseRe  = regexp.MustCompile(`^[A-Z]{3}[0-9]{5}$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
)

const minPasswordLength = 8

// ValidateLicenseNumber enforces three uppercase letters followed by five digits.
func ValidateLicenseNumber(license string) error {
	v := &ValidationError{}
	checkLicense(v, "license_number", license)
	return v.orNil()
}

func checkLicense(v *ValidationError, field, license string) {
	switch {
	case license == "":
		v.add(field, "This field is required.")
	case utf8.RuneCountInString(license) != 8:
		v.add(field, "License number should consist of 8 characters.")
	case !licenseRe.MatchString(license):
		v.add(field, "First 3 characters should be uppercase letters, last 5 characters should be digits.")
	}
}

func checkLength(v *ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Ensure this value has at most %d characters.", max))
	}
}

// checkURL accepts an empty value or an absolute http(s) URL.
func checkURL(v *ValidationError, field, value string) {
	if value == "" {
		return
	}
	checkLength(v, field, value, 512)
	if err := fieldValidator.Var(value, "http_url"); err != nil {
		v.add(field, "Enter a valid URL.")
	}
}
