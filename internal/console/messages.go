// Package console holds the screen flows of the user console: validation,
// error classification and the state each screen renders.
package console

import "net/http"

// Operation is the kind of action whose failure is being classified.
type Operation int

// Operations that surface user-facing messages.
const (
	OpLogin Operation = iota
	OpLoadUser
	OpCreateUser
	OpUpdateUser
)

// MessageKey identifies a user-facing message.
type MessageKey string

// Message keys.
const (
	MsgNone               MessageKey = ""
	MsgRequiredFields     MessageKey = "required_fields"
	MsgPasswordTooShort   MessageKey = "password_too_short"
	MsgInvalidCredentials MessageKey = "invalid_credentials"
	MsgUserNotFound       MessageKey = "user_not_found"
	MsgLoginFailed        MessageKey = "login_failed"
	MsgEmailInUse         MessageKey = "email_in_use"
	MsgInvalidData        MessageKey = "invalid_data"
	MsgCreateFailed       MessageKey = "create_failed"
	MsgUpdateFailed       MessageKey = "update_failed"
	MsgLoadFailed         MessageKey = "load_failed"
)

var messages = map[MessageKey]string{
	MsgRequiredFields:     "All fields are required",
	MsgPasswordTooShort:   "Password must be at least 6 characters",
	MsgInvalidCredentials: "Incorrect email or password",
	MsgUserNotFound:       "User not found",
	MsgLoginFailed:        "Could not sign in. Please try again",
	MsgEmailInUse:         "This email is already in use",
	MsgInvalidData:        "Invalid data. Check the fields",
	MsgCreateFailed:       "Could not create user. Please try again",
	MsgUpdateFailed:       "Could not update user",
	MsgLoadFailed:         "Could not load user",
}

// Message returns the text for key, or "" for MsgNone.
func Message(key MessageKey) string {
	return messages[key]
}

// Classify maps a failed operation and its HTTP status (0 when there was
// no response) to a message key.
func Classify(op Operation, status int) MessageKey {
	switch op {
	case OpLogin:
		switch status {
		case http.StatusUnauthorized:
			return MsgInvalidCredentials
		case http.StatusNotFound:
			return MsgUserNotFound
		}
		return MsgLoginFailed
	case OpCreateUser:
		switch status {
		case http.StatusConflict:
			return MsgEmailInUse
		case http.StatusBadRequest:
			return MsgInvalidData
		}
		return MsgCreateFailed
	case OpUpdateUser:
		if status == http.StatusConflict {
			return MsgEmailInUse
		}
		return MsgUpdateFailed
	case OpLoadUser:
		return MsgLoadFailed
	}
	return MsgNone
}
