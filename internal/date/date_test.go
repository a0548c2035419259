package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		from   Date
		months int
		want   Date
	}{
		{New(2024, 1, 31), 1, New(2024, 2, 29)},
		{New(2023, 1, 31), 1, New(2023, 2, 28)},
		{New(2024, 3, 31), 1, New(2024, 4, 30)},
		{New(2024, 12, 15), 1, New(2025, 1, 15)},
		{New(2024, 1, 31), 13, New(2025, 2, 28)},
		{New(2024, 3, 31), -1, New(2024, 2, 29)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.AddMonths(tt.months), "%s + %d months", tt.from, tt.months)
	}
}

func TestAddYearsFromLeapDay(t *testing.T) {
	assert.Equal(t, New(2025, 2, 28), New(2024, 2, 29).AddYears(1))
	assert.Equal(t, New(2028, 2, 29), New(2024, 2, 29).AddYears(4))
}

func TestCompareAndDaysUntil(t *testing.T) {
	a := New(2024, 1, 15)
	b := New(2024, 2, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.Equal(t, 0, a.Compare(New(2024, 1, 15)))
	assert.Equal(t, 17, a.DaysUntil(b))
	assert.Equal(t, -17, b.DaysUntil(a))
}

func TestOfIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 6, 1, 23, 59, 59, 0, time.Local)
	assert.Equal(t, New(2024, 6, 1), Of(late))
	assert.Equal(t, "2024-06-01", Of(late).String())
}

func TestDateEncoding(t *testing.T) {
	type record struct {
		Due  Date `json:"due" yaml:"due"`
		Done Date `json:"done" yaml:"done"`
	}
	in := record{Due: New(2024, 2, 29)}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-02-29","done":""}`, string(b))

	var fromJSON record
	require.NoError(t, json.Unmarshal(b, &fromJSON))
	assert.Equal(t, in, fromJSON)

	y, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(y), "2024-02-29")

	var fromYAML record
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))
	assert.Equal(t, in, fromYAML)
}

func TestDateDecodingRejectsGarbage(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"31/31/2024"`), &d)
	assert.Error(t, err)
}
