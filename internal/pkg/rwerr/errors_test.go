package rwerr

import "testing"

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestWithExtrasCopies(t *testing.T) {
	e := New(409, "INVALID_TRANSITION", "nope")
	withExtras := e.WithExtras(Extras{"from": "resolved", "to": "verified"})
	if e.Extras != nil {
		t.Errorf("Expected original error to carry no extras, got %v", e.Extras)
	}
	if withExtras.Extras == nil || (*withExtras.Extras)["from"] != "resolved" {
		t.Errorf("Expected copied error to carry extras, got %v", withExtras.Extras)
	}
}
