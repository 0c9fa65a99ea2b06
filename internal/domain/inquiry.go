package domain

import "time"

// InquiryKind distinguishes the two public forms
type InquiryKind string

const (
	KindGeneral  InquiryKind = "general"
	KindInvestor InquiryKind = "investor"
)

// Inquiry is the shape shared by every form submission.
//
// ID, CreatedAt and UpdatedAt are owned by the store: whatever the caller
// puts there is overwritten when the inquiry is persisted.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   *string   `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeneralInquiry is a contact form submission
type GeneralInquiry struct {
	Inquiry
}

// InvestorInquiry is an investor form submission
type InvestorInquiry struct {
	Inquiry
	Company          *string  `json:"company,omitempty"`
	InvestmentAmount *float64 `json:"investment_amount,omitempty"`
}

// Stamp assigns the store-owned fields of a new inquiry.
func (i *Inquiry) Stamp(id string, now time.Time) {
	i.ID = id
	i.CreatedAt = now
	i.UpdatedAt = now
}

// Clone returns a copy that shares no pointers with i
func (i Inquiry) Clone() Inquiry {
	i.Subject = clonePtr(i.Subject)
	return i
}

// Clone returns a copy that shares no pointers with g
func (g GeneralInquiry) Clone() GeneralInquiry {
	g.Inquiry = g.Inquiry.Clone()
	return g
}

// Clone returns a copy that shares no pointers with v
func (v InvestorInquiry) Clone() InvestorInquiry {
	v.Inquiry = v.Inquiry.Clone()
	v.Company = clonePtr(v.Company)
	v.InvestmentAmount = clonePtr(v.InvestmentAmount)
	return v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
