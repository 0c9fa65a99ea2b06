package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	goa "goa.design/goa/v3/pkg"

	"inquirydesk/internal/domain"
	"inquirydesk/internal/services"
	apperrors "inquirydesk/pkg/errors"
)

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type listResponse[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Items   []T  `json:"items"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	res := s.svc.Health.Check(r.Context())
	status := http.StatusOK
	if !res.Healthy() {
		status = http.StatusServiceUnavailable
	}
	s.encode(r.Context(), w, status, res)
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var p services.ContactSubmitPayload
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.Contact.Submit(r.Context(), p)
	s.submitted(w, r, res, err)
}

func (s *Server) submitInvestment(w http.ResponseWriter, r *http.Request) {
	var p services.InvestorSubmitPayload
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.Investment.Submit(r.Context(), p)
	s.submitted(w, r, res, err)
}

func (s *Server) listContact(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Contact.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, listResponse[domain.GeneralInquiry]{Success: true, Count: len(items), Items: items})
}

func (s *Server) listInvestment(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Investment.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, listResponse[domain.InvestorInquiry]{Success: true, Count: len(items), Items: items})
}

// decode reads a JSON body into v, answering 400 itself when it cannot
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := goahttp.RequestDecoder(r).Decode(v); err != nil {
		s.log.Info("malformed request body", zap.String("path", r.URL.Path), zap.Error(err))
		s.encode(r.Context(), w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

func (s *Server) submitted(w http.ResponseWriter, r *http.Request, res *services.SubmitResult, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, submitResponse{
		Success: true,
		ID:      res.ID,
		Message: res.Message,
		Warning: res.Warning,
	})
}

// fail maps an error code to a status. Persistence details stay in the log.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch apperrors.Code(err) {
	case apperrors.ErrCodeValidation:
		details := err.Error()
		var se *goa.ServiceError
		if errors.As(err, &se) {
			details = se.Message
		}
		s.encode(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: details})
	case apperrors.ErrCodeConflict:
		s.encode(r.Context(), w, http.StatusConflict, errorResponse{Error: "Already exists"})
	case apperrors.ErrCodePersistence:
		s.encode(r.Context(), w, http.StatusInternalServerError, errorResponse{
			Error: "We could not save your submission. Please try again later.",
		})
	default:
		s.log.Error("unhandled error", zap.String("path", r.URL.Path), zap.Error(err))
		s.encode(r.Context(), w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

func (s *Server) encode(ctx context.Context, w http.ResponseWriter, status int, v any) {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}
