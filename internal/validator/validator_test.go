package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Gender *string `json:"gender" validate:"omitempty,is-gender"`
	Start  string  `json:"start" validate:"required,date-ymd"`
	Price  float64 `json:"price" validate:"required,gt=0"`
}

func strPtr(s string) *string { return &s }

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&sample{Gender: strPtr("female"), Start: "2030-01-31", Price: 10}))
	assert.NoError(t, v.Validate(&sample{Start: "2030-01-31", Price: 10}))
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Gender: strPtr("robot"), Start: "31/01/2030", Price: 0})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "gender")
	assert.Contains(t, vErr.Errors, "start")
	assert.Contains(t, vErr.Errors, "price")
	assert.Equal(t, "Must be a date in YYYY-MM-DD format", vErr.Errors["start"])
}
