package mongostore

import (
	"time"

	"inquirydesk/internal/domain"
)

const (
	accountsCollection   = "accounts"
	contactCollection    = "contact_inquiries"
	investmentCollection = "investment_inquiries"
)

// accountDoc is an accounts document. _id is the store-assigned numeric identity.
type accountDoc struct {
	ID          int64     `bson:"_id"`
	Username    string    `bson:"username"`
	Email       string    `bson:"email"`
	SecretHash  string    `bson:"secret_hash"`
	DisplayName *string   `bson:"display_name,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:          d.ID,
		Username:    d.Username,
		Email:       d.Email,
		SecretHash:  d.SecretHash,
		DisplayName: d.DisplayName,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// inquiryDoc serves both inquiry collections; the investor fields are omitted
// from contact documents.
type inquiryDoc struct {
	ID               string    `bson:"_id"`
	Name             string    `bson:"name"`
	Email            string    `bson:"email"`
	Phone            string    `bson:"phone"`
	Subject          *string   `bson:"subject,omitempty"`
	Message          string    `bson:"message"`
	Company          *string   `bson:"company,omitempty"`
	InvestmentAmount *float64  `bson:"investment_amount,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func newInquiryDoc(in domain.Inquiry) inquiryDoc {
	return inquiryDoc{
		ID:        in.ID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
}

func (d *inquiryDoc) inquiry() domain.Inquiry {
	return domain.Inquiry{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Subject:   d.Subject,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}
