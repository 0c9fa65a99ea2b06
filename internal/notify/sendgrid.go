package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	defaultSendGridHost = "https://api.sendgrid.com"
	mailSendEndpoint    = "/v3/mail/send"
)

// Address is a mailbox with an optional display name
type Address struct {
	Name  string
	Email string
}

// Message is one outbound email
type Message struct {
	From    Address
	To      Address
	ReplyTo Address
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single message. Implementations make exactly one attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Failure categories reported by DeliveryError
const (
	CategoryAuthorization    = "authorization"
	CategoryUnverifiedSender = "unverified_sender"
	CategoryValidation       = "validation"
	CategoryRateLimited      = "rate_limited"
	CategoryProvider         = "provider"
	CategoryTransport        = "transport"
)

// ProviderError is one entry of the provider's error list
type ProviderError struct {
	Message string
	Field   string
	Help    string
}

// DeliveryError describes a rejected or failed delivery attempt
type DeliveryError struct {
	StatusCode int
	Category   string
	Errors     []ProviderError
	Err        error
}

func (e *DeliveryError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("sendgrid %s: %v", e.Category, e.Err)
	case len(e.Errors) > 0 && e.Errors[0].Message != "":
		return fmt.Sprintf("sendgrid http %d (%s): %s", e.StatusCode, e.Category, e.Errors[0].Message)
	default:
		return fmt.Sprintf("sendgrid http %d (%s)", e.StatusCode, e.Category)
	}
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Field returns the first field the provider blamed, if any
func (e *DeliveryError) Field() string {
	for _, pe := range e.Errors {
		if pe.Field != "" {
			return pe.Field
		}
	}
	return ""
}

// categorize maps a provider status to a failure category
func categorize(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return CategoryAuthorization
	case http.StatusForbidden:
		return CategoryUnverifiedSender
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return CategoryValidation
	case http.StatusTooManyRequests:
		return CategoryRateLimited
	default:
		return CategoryProvider
	}
}

// SendGridSender delivers mail through the SendGrid v3 mail send API
type SendGridSender struct {
	apiKey string
	host   string
}

// NewSendGridSender creates a sender. An empty host selects the public SendGrid API.
func NewSendGridSender(apiKey, host string) *SendGridSender {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		host = defaultSendGridHost
	}
	return &SendGridSender{apiKey: apiKey, host: host}
}

// Send implements Sender
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	email := mail.NewV3MailInit(
		mail.NewEmail(msg.From.Name, msg.From.Email),
		msg.Subject,
		mail.NewEmail(msg.To.Name, msg.To.Email),
		mail.NewContent("text/plain", msg.Text),
		mail.NewContent("text/html", msg.HTML),
	)
	if msg.ReplyTo.Email != "" {
		email.SetReplyTo(mail.NewEmail(msg.ReplyTo.Name, msg.ReplyTo.Email))
	}

	request := sendgrid.GetRequest(s.apiKey, mailSendEndpoint, s.host)
	request.Method = rest.Post
	client := &sendgrid.Client{Request: request}

	resp, err := client.SendWithContext(ctx, email)
	if err != nil {
		return &DeliveryError{Category: CategoryTransport, Err: err}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &DeliveryError{
		StatusCode: resp.StatusCode,
		Category:   categorize(resp.StatusCode),
		Errors:     decodeProviderErrors(resp.Body),
	}
}

// decodeProviderErrors reads {"errors":[{"message","field","help"}]}. field and
// help are null or non-string on some responses.
func decodeProviderErrors(body string) []ProviderError {
	var payload struct {
		Errors []struct {
			Message string `json:"message"`
			Field   any    `json:"field"`
			Help    any    `json:"help"`
		} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil
	}
	out := make([]ProviderError, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		out = append(out, ProviderError{
			Message: e.Message,
			Field:   asString(e.Field),
			Help:    asString(e.Help),
		})
	}
	return out
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
