// Package models defines the client-side data shapes shared by the API
// client, the domain services and the session.
package models

// UserProfile is the cached identity of the logged-in user. It is stored as
// JSON under the userData key.
type UserProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName joins first and last name, falling back to the email.
func (u UserProfile) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// Credential is the single active login: bearer token plus cached profile.
type Credential struct {
	Token   string
	Profile UserProfile
}
