package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T12:30:00+02:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{" 2024-01-15 10:30:00 ", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, d.Equal(tt.want), "got %s", d.Time)
		})
	}

	_, err := ParseDate("last tuesday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		PublishedAt Date  `json:"publishedAt"`
		Optional    *Date `json:"optional"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"publishedAt":"2024-02-01","optional":null}`), &payload))
	assert.Equal(t, 2024, payload.PublishedAt.Year())
	assert.Nil(t, payload.Optional)

	out, err := json.Marshal(payload.PublishedAt)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-01T00:00:00Z"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"publishedAt":"soon"}`), &payload), ErrInvalidDate)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"publishedAt":20240201}`), &payload), ErrInvalidDate)
}

func TestEducationStatus_Valid(t *testing.T) {
	for _, s := range []EducationStatus{
		EducationStatusCompleted,
		EducationStatusInProgress,
		EducationStatusToBegin,
		EducationStatusDroppedOff,
	} {
		assert.True(t, s.Valid(), s)
	}

	assert.False(t, EducationStatus("Completed").Valid())
	assert.False(t, EducationStatus("").Valid())
}

func TestSelectedProject_PositionIsDisplayOrder(t *testing.T) {
	p := &SelectedProject{DisplayOrder: 3}
	assert.Equal(t, 3, p.Position())

	p.SetPosition(0)
	assert.Equal(t, 0, p.DisplayOrder)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", StringValue(StringPtr("x")))
	assert.Equal(t, "", StringValue(nil))
}
