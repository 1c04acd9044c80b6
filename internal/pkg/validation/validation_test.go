package validation

import (
	"errors"
	"testing"
)

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func TestStruct_FirstFailingField(t *testing.T) {
	err := Struct(loginInput{Email: "not-an-email", Password: "x"})
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fe.Field != "Email" || fe.Tag != "email" {
		t.Fatalf("unexpected field error: %+v", fe)
	}

	if err := Struct(loginInput{Email: "a@b.co", Password: "x"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestEmail(t *testing.T) {
	if !Email("alice@acme.com") {
		t.Fatalf("expected valid email")
	}
	for _, bad := range []string{"", "alice", "alice@", "@acme.com"} {
		if Email(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}
