package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if IsInvalidCredentials(ErrInvalidToken) {
		t.Fatal("token error must not match credentials predicate")
	}
	if IsNotFound(ErrAlreadyExists) {
		t.Fatal("exists error must not match not-found predicate")
	}
}
