package domain

import "time"

// Account is a login identity. IDs are assigned by the store and never reused.
type Account struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	SecretHash  string    `json:"-"`
	DisplayName *string   `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccountDraft holds the fields a caller supplies when registering an account
type AccountDraft struct {
	Username    string
	Email       string
	SecretHash  string
	DisplayName *string
}

// Clone returns a copy that shares no pointers with a
func (a Account) Clone() Account {
	a.DisplayName = clonePtr(a.DisplayName)
	return a
}
