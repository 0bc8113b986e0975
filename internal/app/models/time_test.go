package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsNaiveAndZonedValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 utc", `"2024-01-10T09:00:00Z"`, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", `"2024-01-10T09:00:00-05:00"`, time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)},
		{"fractional seconds", `"2024-01-10T09:00:00.250Z"`, time.Date(2024, 1, 10, 9, 0, 0, 250000000, time.UTC)},
		{"naive seconds", `"2024-01-10T09:00:00"`, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)},
		{"naive minutes", `"2024-01-10T11:01"`, time.Date(2024, 1, 10, 11, 1, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Timestamp *Timestamp `json:"timestamp"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"timestamp":`+tt.input+`}`), &payload))
			require.NotNil(t, payload.Timestamp)
			assert.True(t, payload.Timestamp.Equal(tt.want), "got %s", payload.Timestamp.Time)
		})
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"10/01/2024 09:00"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`"2024-01-10"`), &ts))
}

func TestTimestampMissingStaysNil(t *testing.T) {
	var payload struct {
		Timestamp *Timestamp `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.Nil(t, payload.Timestamp)
}

func TestTimestampMarshalsAsRFC3339(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	encoded, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-10T09:00:00Z"`, string(encoded))
}
