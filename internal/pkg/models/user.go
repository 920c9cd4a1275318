package models

// UserState of an internal user account
type UserState string

const (
	UserStateActive   UserState = "active"
	UserStateBanned   UserState = "banned"
	UserStateArchived UserState = "archived"
)

// User is the subset of an internal user the ledger resolves
type User struct {
	ID            string    `json:"id" db:"id"`
	UserName      string    `json:"user_name" db:"user_name"`
	Email         string    `json:"email,omitempty" db:"email"`
	State         UserState `json:"state" db:"state"`
	WalletAddress string    `json:"wallet_address,omitempty" db:"wallet_address"`
}

// Contactable reports whether the user can receive settlement notices
func (u *User) Contactable() bool {
	return u != nil && u.Email != "" && u.State == UserStateActive
}

// Article is the subset of a published article the ledger resolves
type Article struct {
	ID       string `json:"id" db:"id"`
	AuthorID string `json:"author_id" db:"author_id"`
	DataHash string `json:"data_hash" db:"data_hash"`
	Title    string `json:"title" db:"title"`
}
