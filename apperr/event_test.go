package apperr

import (
	"errors"
	"testing"
)

// TestClassifySeverity verifies the severity derivation order: status
// first, then kind.
func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"server 500", Server("boom"), SeverityError},
		{"validation 400", Validation("bad"), SeverityWarning},
		{"authentication 401", Authentication("no"), SeverityWarning},
		{"conflict 409", Conflict("dup"), SeverityWarning},
		{"network status 0", Network("down"), SeverityNetwork},
		{"plain error", errors.New("boom"), SeverityError},
	}
	for _, tt := range tests {
		ev := Classify(tt.err, nil)
		if ev.Severity != tt.want {
			t.Errorf("%s: severity = %v, want %v", tt.name, ev.Severity, tt.want)
		}
	}
}

// TestClassifyMessage checks user-message resolution: the table wins for
// mapped codes, the error's own message otherwise.
func TestClassifyMessage(t *testing.T) {
	mapped := Classify(Authentication("backend detail").WithCode(CodeInvalidCredentials), nil)
	if mapped.Message != "Incorrect email or password" {
		t.Errorf("mapped code message = %q, want table entry", mapped.Message)
	}

	unmapped := Classify(Authentication("The server took too long to respond"), nil)
	if unmapped.Message != "The server took too long to respond" {
		t.Errorf("unmapped code message = %q, want the error's own", unmapped.Message)
	}

	violation := Classify(Validation("The email is required").WithCode(CodeValidationFailed), nil)
	if violation.Message != "The email is required" {
		t.Errorf("schema failure message = %q, want the first violation", violation.Message)
	}

	plain := Classify(errors.New("disk on fire"), nil)
	if plain.Message != "disk on fire" {
		t.Errorf("plain error message = %q, want the error's own", plain.Message)
	}
	if plain.Code != CodeUnknownError {
		t.Errorf("plain error code = %v, want %v", plain.Code, CodeUnknownError)
	}
}

// TestClassifyFields checks id, timestamp, and context handling.
func TestClassifyFields(t *testing.T) {
	err := Conflict("dup").With("item", 42)
	ev := Classify(err, map[string]interface{}{"operation": "add_favorite"})

	if ev.ID == "" {
		t.Errorf("event should get a generated id")
	}
	if ev.Timestamp.IsZero() {
		t.Errorf("event should get a timestamp")
	}
	if ev.Status != 409 {
		t.Errorf("status = %d, want 409", ev.Status)
	}
	if ev.Context["item"] != 42 {
		t.Errorf("error context should be carried into the event")
	}
	if ev.Context["operation"] != "add_favorite" {
		t.Errorf("call context should be merged into the event")
	}
}

// TestClassifyPassthrough ensures an already-classified event keeps its
// identity instead of being reclassified.
func TestClassifyPassthrough(t *testing.T) {
	ev := Classify(Server("boom"), nil)
	again := Classify(ev, map[string]interface{}{"retry": 2})
	if again.ID != ev.ID {
		t.Errorf("reclassifying an event must not mint a new id")
	}
	if again.Context["retry"] != 2 {
		t.Errorf("merged context lost on passthrough")
	}
}

// TestEventError verifies the event propagates as an error.
func TestEventError(t *testing.T) {
	ev := Classify(NotFound("gone"), nil)
	var err error = ev
	if err.Error() != "gone" {
		t.Errorf("Error() = %q, want %q", err.Error(), "gone")
	}
}
