package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_GroupsFields(t *testing.T) {
	err := ValidationError(
		FieldError{Field: "phone", Message: "The phone field is required."},
		FieldError{Field: "phone", Message: "The phone field format is invalid."},
		FieldError{Field: "name", Message: "The name field is required."},
	)

	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPCode)
	assert.Equal(t, "The phone field is required.", err.Message)
	assert.Len(t, err.FieldMessages()["phone"], 2)
	assert.True(t, err.HasField("name"))
	assert.False(t, err.HasField("email"))
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("apply: %w", ErrCannotApplyToOwnShift)
	assert.Equal(t, CodeInvalidOperation, KindOf(wrapped))
	assert.Equal(t, CodeForbidden, KindOf(ErrNotShiftOwner))
	assert.Equal(t, CodeInternalError, KindOf(errors.New("boom")))
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", ErrShiftNotFound, http.StatusNotFound, `{"message":"Shift not found"}`},
		{"forbidden", ErrOnlyWorkerCanApply, http.StatusForbidden, `{"message":"Only workers can apply to shifts"}`},
		{"validation", FieldInvalid("end_at", "bad"), http.StatusUnprocessableEntity, `{"message":"bad","errors":{"end_at":["bad"]}}`},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, `{"message":"Internal server error"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
			assert.True(t, c.IsAborted())
		})
	}
}

func TestHandleError_DebugShowsCause(t *testing.T) {
	SetDebug(true)
	t.Cleanup(func() { SetDebug(false) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, DatabaseError(errors.New("connection refused")))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error: connection refused", body.Message)
}
