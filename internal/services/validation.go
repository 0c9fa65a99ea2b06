package services

import (
	"strings"
	"unicode/utf8"

	goa "goa.design/goa/v3/pkg"

	"inquirydesk/internal/domain"
)

const (
	nameMinLength    = 2
	nameMaxLength    = 100
	phoneMinLength   = 5
	phoneMaxLength   = 20
	subjectMaxLength = 200
	messageMaxLength = 5000
	companyMaxLength = 200

	// Digits, spaces and + - ( ) so international formats pass
	phonePattern = `^[0-9 +()\-]+$`
)

// normalizeInquiry trims every field and lowercases the email. Blank optional
// fields become absent.
func normalizeInquiry(in *domain.Inquiry) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	in.Subject = optional(in.Subject)
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// validateInquiry reports every rule the fields shared by both forms break
func validateInquiry(in *domain.Inquiry) error {
	var err error

	if in.Name == "" {
		err = goa.MergeErrors(err, goa.MissingFieldError("name", "body"))
	} else {
		err = goa.MergeErrors(err, validateRuneLength("body.name", in.Name, nameMinLength, nameMaxLength))
	}

	if in.Email == "" {
		err = goa.MergeErrors(err, goa.MissingFieldError("email", "body"))
	} else {
		err = goa.MergeErrors(err, goa.ValidateFormat("body.email", in.Email, goa.FormatEmail))
	}

	if in.Phone == "" {
		err = goa.MergeErrors(err, goa.MissingFieldError("phone", "body"))
	} else {
		err = goa.MergeErrors(err, validateRuneLength("body.phone", in.Phone, phoneMinLength, phoneMaxLength))
		err = goa.MergeErrors(err, goa.ValidatePattern("body.phone", in.Phone, phonePattern))
	}

	if in.Subject != nil {
		err = goa.MergeErrors(err, validateRuneLength("body.subject", *in.Subject, 0, subjectMaxLength))
	}

	if in.Message == "" {
		err = goa.MergeErrors(err, goa.MissingFieldError("message", "body"))
	} else {
		err = goa.MergeErrors(err, validateRuneLength("body.message", in.Message, 1, messageMaxLength))
	}

	return err
}

// validateInvestor adds the investor-only rules
func validateInvestor(in *domain.InvestorInquiry) error {
	err := validateInquiry(&in.Inquiry)
	if in.Company != nil {
		err = goa.MergeErrors(err, validateRuneLength("body.company", *in.Company, 0, companyMaxLength))
	}
	if in.InvestmentAmount != nil && *in.InvestmentAmount < 0 {
		err = goa.MergeErrors(err, goa.InvalidRangeError("body.investment_amount", *in.InvestmentAmount, 0, true))
	}
	return err
}

func validateRuneLength(name, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return goa.InvalidLengthError(name, value, n, minLen, true)
	}
	if n > maxLen {
		return goa.InvalidLengthError(name, value, n, maxLen, false)
	}
	return nil
}
