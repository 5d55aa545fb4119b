package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2023-11-10", want: NewDate(2023, time.November, 10)},
		{input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{input: "2023-02-29", wantErr: true},
		{input: "11/10/2023", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2023, time.November, 28)

	assert.Equal(t, "2023-12-05", d.AddDays(7).String())
	assert.Equal(t, "2023-11-21", d.AddDays(-7).String())
	assert.Equal(t, 7, d.DaysUntil(d.AddDays(7)))
	assert.Equal(t, -3, d.DaysUntil(d.AddDays(-3)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.False(t, d.Before(d))
}

func TestDaysUntilLongSpans(t *testing.T) {
	d := NewDate(2023, time.January, 1)
	assert.Equal(t, 182621, d.DaysUntil(NewDate(2523, time.January, 1)))
	assert.Equal(t, -182621, NewDate(2523, time.January, 1).DaysUntil(d))
}

func TestAddDaysCapped(t *testing.T) {
	d := NewDate(2023, time.November, 10)

	assert.Equal(t, "2023-11-17", d.AddDaysCapped(7).String())
	assert.Equal(t, "2023-11-03", d.AddDaysCapped(-7).String())
	assert.Equal(t, "2023-11-10", d.AddDaysCapped(0).String())
	assert.Equal(t, "9999-12-30", MaxDate.AddDays(-1).AddDaysCapped(0).String())
	assert.Equal(t, "9999-12-31", MaxDate.AddDays(-1).AddDaysCapped(1).String())
	assert.Equal(t, "9999-12-31", d.AddDaysCapped(3285000).String())
	assert.Equal(t, "9999-12-31", d.AddDaysCapped(math.MaxInt).String())
	assert.Equal(t, "9999-12-31", MaxDate.AddDaysCapped(1).String())
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2023, time.November, 10, 23, 59, 0, 0, loc)

	assert.Equal(t, "2023-11-10", DateOf(late).String())
}

func TestDateLexicographicOrderMatchesChronological(t *testing.T) {
	a := NewDate(2023, time.September, 30)
	b := NewDate(2023, time.October, 1)

	assert.True(t, a.Before(b))
	assert.Less(t, a.String(), b.String())
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Expiry *Date `json:"expiry,omitempty"`
		Added  Date  `json:"added"`
	}

	in := wrapper{Expiry: DatePtr(NewDate(2023, 11, 15)), Added: NewDate(2023, 11, 1)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"expiry":"2023-11-15","added":"2023-11-01"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotNil(t, out.Expiry)
	assert.True(t, out.Expiry.Equal(*in.Expiry))
	assert.True(t, out.Added.Equal(in.Added))

	var empty wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"expiry":null,"added":""}`), &empty))
	assert.Nil(t, empty.Expiry)
	assert.True(t, empty.Added.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"added":"2023-13-01"}`), &out))
}

func TestDateYAML(t *testing.T) {
	type wrapper struct {
		Expiry Date `yaml:"expiry"`
	}

	data, err := yaml.Marshal(wrapper{Expiry: NewDate(2023, 12, 20)})
	require.NoError(t, err)
	assert.Contains(t, string(data), "2023-12-20")

	var out wrapper
	require.NoError(t, yaml.Unmarshal([]byte("expiry: 2023-12-20\n"), &out))
	assert.Equal(t, "2023-12-20", out.Expiry.String())
}
