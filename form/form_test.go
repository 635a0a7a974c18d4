package form

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrobles-dev/cinevault/apperr"
	"github.com/mrobles-dev/cinevault/errhub"
	"github.com/mrobles-dev/cinevault/schema"
)

func newValidator(t *testing.T, options ...Option) (*Validator, *errhub.Hub) {
	t.Helper()
	hub := errhub.New(errhub.WithLogger(apperr.NewLogger(slog.NewTextHandler(io.Discard, nil))))
	return New(schema.Login(), hub, options...), hub
}

func TestFieldChangeGatedByTouched(t *testing.T) {
	v, _ := newValidator(t)

	v.FieldChange("email", "not-an-email")
	assert.Empty(t, v.Error("email"), "untouched fields keep their errors hidden")
	assert.True(t, v.Valid())

	v.FieldBlur("email", "not-an-email")
	assert.Equal(t, "Invalid email format", v.Error("email"))
	assert.False(t, v.Valid())

	// Once touched, change surfaces errors immediately.
	v.FieldChange("email", "still-bad")
	assert.Equal(t, "Invalid email format", v.Error("email"))

	v.FieldChange("email", "user@test.com")
	assert.Empty(t, v.Error("email"))
	assert.True(t, v.Valid())
}

func TestFieldChangeShowsImmediatelyWhenUngated(t *testing.T) {
	v, _ := newValidator(t, ShowWhenTouched(false))

	v.FieldChange("password", "abc")
	assert.Equal(t, "The password must be at least 6 characters", v.Error("password"))
}

func TestFieldBlurAlwaysSurfaces(t *testing.T) {
	v, _ := newValidator(t)

	v.FieldBlur("password", "abc")
	assert.Equal(t, "The password must be at least 6 characters", v.Error("password"))
	assert.True(t, v.Touched("password"))

	v.FieldBlur("password", "user123")
	assert.Empty(t, v.Error("password"))
}

func TestValidateFormSurfacesEverything(t *testing.T) {
	v, hub := newValidator(t)

	res := v.ValidateForm(map[string]interface{}{"email": "", "password": "abc"})
	require.False(t, res.OK)

	errs := v.Errors()
	assert.Equal(t, "The email is required", errs["email"])
	assert.Equal(t, "The password must be at least 6 characters", errs["password"])
	assert.False(t, v.Valid())

	events := hub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, apperr.CodeValidationFailed, events[0].Code)
	assert.Equal(t, "The email is required", events[0].Message,
		"the first violation is the event message")
	assert.Equal(t, true, events[0].Context["form"])
	assert.ElementsMatch(t, []string{"email", "password"}, events[0].Context["fields"])
}

func TestValidateFormDistinctFailuresDistinctEvents(t *testing.T) {
	v, hub := newValidator(t)

	v.ValidateForm(map[string]interface{}{"email": "", "password": "user123"})
	v.ValidateForm(map[string]interface{}{"email": "user@test.com", "password": "abc"})

	events := hub.Events()
	require.Len(t, events, 2, "different form failures must not collapse into one event")
	assert.Equal(t, "The email is required", events[0].Message)
	assert.Equal(t, "The password must be at least 6 characters", events[1].Message)
}

func TestValidateFormSuccessClearsErrors(t *testing.T) {
	v, hub := newValidator(t)

	v.FieldBlur("email", "bad")
	require.False(t, v.Valid())

	res := v.ValidateForm(map[string]interface{}{"email": "user@test.com", "password": "user123"})
	require.True(t, res.OK)
	assert.True(t, v.Valid())
	assert.Empty(t, hub.Events())
}

func TestClearResetsErrorsAndTouchedTogether(t *testing.T) {
	v, _ := newValidator(t)

	v.FieldBlur("email", "bad")
	require.False(t, v.Valid())
	require.True(t, v.Touched("email"))

	v.Clear()
	assert.True(t, v.Valid())
	assert.False(t, v.Touched("email"))

	// Back to hidden errors until the field is touched again.
	v.FieldChange("email", "still-bad")
	assert.Empty(t, v.Error("email"))
}

func TestClearField(t *testing.T) {
	v, _ := newValidator(t)

	v.FieldBlur("email", "bad")
	v.FieldBlur("password", "abc")
	v.ClearField("email")

	assert.Empty(t, v.Error("email"))
	assert.NotEmpty(t, v.Error("password"))
}
