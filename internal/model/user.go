// Package model defines the entities exchanged with the user API.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserID is the API's opaque user identifier.
// The API may encode it as a JSON number or a string.
type UserID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or number: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// String returns the identifier as text.
func (id UserID) String() string {
	return string(id)
}

// User is a user as returned by the API. The password is never read back.
type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser is the payload for creating a user.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is the payload for editing a user. It has no password field.
type UserUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
