package tenancy

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampJSON(t *testing.T) {
	b, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.JSONEq(t, `"Never"`, string(b))

	at := At(time.Date(2024, 6, 24, 10, 30, 0, 0, time.UTC))
	b, err = json.Marshal(at)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-06-24T10:30:00Z"`, string(b))

	for _, in := range []string{`"Never"`, `""`, `null`} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts))
		assert.True(t, ts.IsNever(), in)
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-24T10:30:00Z"`), &ts))
	assert.True(t, ts.Equal(at.Time))
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestDefaultSettings(t *testing.T) {
	assert.Equal(t, 5, DefaultSettings(PlanStarter).MaxUsers)
	assert.Equal(t, 100.0, DefaultSettings(PlanProfessional).MaxStorageGB)
	assert.Equal(t, 2000.0, DefaultSettings(PlanEnterprise).MaxProcessingHoursPerMonth)
	assert.Equal(t, DefaultSettings(PlanStarter), DefaultSettings(PlanCustom))
}

func TestErrorMessage(t *testing.T) {
	err := notFound("organization", "org-1")
	assert.EqualError(t, err, "organization org-1: not found")
	assert.ErrorIs(t, err, ErrNotFound)

	err = invalidInput("user", "email is required")
	assert.EqualError(t, err, "user: invalid input: email is required")
	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(err))
}
