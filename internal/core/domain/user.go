package domain

// AuthProvider identifies the external identity provider that vouched for a user.
type AuthProvider string

const (
	ProviderGoogle AuthProvider = "google"
)

// CurrentUser is the authenticated caller of a request. UserID doubles as
// the owner key of budgets and transactions.
type CurrentUser struct {
	UserID   string       `json:"userID"`
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	Provider AuthProvider `json:"provider"`
}

// OwnerID builds the owner key for a subject issued by provider.
func OwnerID(provider AuthProvider, subject string) string {
	return string(provider) + ":" + subject
}

// DisplayName prefers the email address, falling back to the name and then the id.
func (u CurrentUser) DisplayName() string {
	switch {
	case u.Email != "":
		return u.Email
	case u.Name != "":
		return u.Name
	default:
		return u.UserID
	}
}
