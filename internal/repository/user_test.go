package repository

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Errorf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateUsername.Error() != "username already exists" {
		t.Errorf("unexpected error message: %s", ErrDuplicateUsername.Error())
	}
	if ErrDuplicateEmail.Error() != "email already exists" {
		t.Errorf("unexpected error message: %s", ErrDuplicateEmail.Error())
	}
}

func TestClassifyDuplicateKey(t *testing.T) {
	err := errors.New(`write exception: write errors: [E11000 duplicate key error collection: accounts.users index: username_unique dup key: { username: "alice" }]`)
	if got := classifyDuplicateKey(err); got != ErrDuplicateUsername {
		t.Errorf("classifyDuplicateKey() = %v, want ErrDuplicateUsername", got)
	}

	err = errors.New(`write exception: write errors: [E11000 duplicate key error collection: accounts.users index: email_unique dup key: { email: "a@x.com" }]`)
	if got := classifyDuplicateKey(err); got != ErrDuplicateEmail {
		t.Errorf("classifyDuplicateKey() = %v, want ErrDuplicateEmail", got)
	}
}

func TestClassifyDuplicateKeyEmailValueContainingUsername(t *testing.T) {
	// The duplicate email value itself mentions "username"; the violated
	// index is still the email one.
	err := errors.New(`write exception: write errors: [E11000 duplicate key error collection: accounts.users index: email_unique dup key: { email: "username@x.com" }]`)
	if got := classifyDuplicateKey(err); got != ErrDuplicateEmail {
		t.Errorf("classifyDuplicateKey() = %v, want ErrDuplicateEmail", got)
	}
}
