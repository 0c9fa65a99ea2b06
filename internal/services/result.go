package services

import (
	"inquirydesk/internal/notify"
	apperrors "inquirydesk/pkg/errors"
)

// SubmitResult is returned for every persisted submission, whatever the notification outcome
type SubmitResult struct {
	ID           string
	Message      string
	Warning      string
	Notification notify.Outcome
}

func invalidSubmission(err error) error {
	return apperrors.Wrap(apperrors.ErrCodeValidation, "invalid submission", err)
}

// notPersisted keeps a backend's classification and marks anything unclassified as a persistence failure
func notPersisted(op string, err error) error {
	if apperrors.Code(err) != "" {
		return err
	}
	return apperrors.Wrap(apperrors.ErrCodePersistence, op, err)
}
