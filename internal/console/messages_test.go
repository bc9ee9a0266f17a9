package console

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		op     Operation
		status int
		want   MessageKey
	}{
		{"login 401", OpLogin, 401, MsgInvalidCredentials},
		{"login 404", OpLogin, 404, MsgUserNotFound},
		{"login 500", OpLogin, 500, MsgLoginFailed},
		{"login 409", OpLogin, 409, MsgLoginFailed},
		{"login no response", OpLogin, 0, MsgLoginFailed},
		{"create 409", OpCreateUser, 409, MsgEmailInUse},
		{"create 400", OpCreateUser, 400, MsgInvalidData},
		{"create 401", OpCreateUser, 401, MsgCreateFailed},
		{"create no response", OpCreateUser, 0, MsgCreateFailed},
		{"update 409", OpUpdateUser, 409, MsgEmailInUse},
		{"update 400", OpUpdateUser, 400, MsgUpdateFailed},
		{"update 500", OpUpdateUser, 500, MsgUpdateFailed},
		{"load 404", OpLoadUser, 404, MsgLoadFailed},
		{"unknown op", Operation(99), 500, MsgNone},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.op, tt.status); got != tt.want {
				t.Errorf("Classify(%d, %d) = %q, want %q", tt.op, tt.status, got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	if Message(MsgInvalidCredentials) != "Incorrect email or password" {
		t.Errorf("Message(MsgInvalidCredentials) = %q", Message(MsgInvalidCredentials))
	}
	if Message(MsgUserNotFound) != "User not found" {
		t.Errorf("Message(MsgUserNotFound) = %q", Message(MsgUserNotFound))
	}
	if Message(MsgNone) != "" {
		t.Errorf("Message(MsgNone) = %q, want empty", Message(MsgNone))
	}

	keys := []MessageKey{
		MsgRequiredFields, MsgPasswordTooShort, MsgInvalidCredentials, MsgUserNotFound,
		MsgLoginFailed, MsgEmailInUse, MsgInvalidData, MsgCreateFailed, MsgUpdateFailed, MsgLoadFailed,
	}
	for _, k := range keys {
		if Message(k) == "" {
			t.Errorf("Message(%q) is empty", k)
		}
	}
}
