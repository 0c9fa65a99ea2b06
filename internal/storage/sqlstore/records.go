package sqlstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inquirydesk/internal/domain"
)

// accountRecord is the accounts row. IDs are assigned by the store, not the database.
type accountRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Username    string    `gorm:"size:100;not null;uniqueIndex"`
	Email       string    `gorm:"size:255;not null;uniqueIndex"`
	SecretHash  string    `gorm:"not null"`
	DisplayName *string   `gorm:"size:200"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for accountRecord
func (accountRecord) TableName() string {
	return "accounts"
}

// BeforeCreate hook
func (a *accountRecord) BeforeCreate(tx *gorm.DB) error {
	a.CreatedAt = stampTime(tx)
	return nil
}

// stampTime is the connection clock at timestamptz precision
func stampTime(tx *gorm.DB) time.Time {
	return tx.NowFunc().Truncate(time.Microsecond)
}

func (a *accountRecord) toDomain() *domain.Account {
	return &domain.Account{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		SecretHash:  a.SecretHash,
		DisplayName: a.DisplayName,
		CreatedAt:   a.CreatedAt.UTC(),
	}
}

// InquiryColumns is shared by both inquiry tables. It must stay exported: gorm
// skips unexported embedded structs.
type InquiryColumns struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:255;not null;index"`
	Phone     string    `gorm:"size:20;not null"`
	Subject   *string   `gorm:"size:200"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// stamp overwrites whatever identity and timestamps the caller supplied
func (c *InquiryColumns) stamp(tx *gorm.DB) {
	now := stampTime(tx)
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
}

func newInquiryColumns(in domain.Inquiry) InquiryColumns {
	return InquiryColumns{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	}
}

func (c *InquiryColumns) toDomain() domain.Inquiry {
	return domain.Inquiry{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

// contactRecord is a contact form row
type contactRecord struct {
	InquiryColumns `gorm:"embedded"`
}

// TableName specifies the table name for contactRecord
func (contactRecord) TableName() string {
	return "contact_inquiries"
}

// BeforeCreate hook
func (r *contactRecord) BeforeCreate(tx *gorm.DB) error {
	r.stamp(tx)
	return nil
}

// BeforeUpdate hook
func (r *contactRecord) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = stampTime(tx)
	return nil
}

func (r *contactRecord) toDomain() domain.GeneralInquiry {
	return domain.GeneralInquiry{Inquiry: r.InquiryColumns.toDomain()}
}

// investmentRecord is an investor form row
type investmentRecord struct {
	InquiryColumns   `gorm:"embedded"`
	Company          *string `gorm:"size:200"`
	InvestmentAmount *float64
}

// TableName specifies the table name for investmentRecord
func (investmentRecord) TableName() string {
	return "investment_inquiries"
}

// BeforeCreate hook
func (r *investmentRecord) BeforeCreate(tx *gorm.DB) error {
	r.stamp(tx)
	return nil
}

// BeforeUpdate hook
func (r *investmentRecord) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = stampTime(tx)
	return nil
}

func (r *investmentRecord) toDomain() domain.InvestorInquiry {
	return domain.InvestorInquiry{
		Inquiry:          r.InquiryColumns.toDomain(),
		Company:          r.Company,
		InvestmentAmount: r.InvestmentAmount,
	}
}
