package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2020-09-17"`), &d))
	assert.Equal(t, NewDate(2020, time.September, 17), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2020-09-17"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"17/09/2020"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20200917`), &d))

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDateScan(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)

	cases := []struct {
		name string
		src  any
		want Date
	}{
		{"time", time.Date(2015, time.May, 19, 0, 0, 0, 0, loc), NewDate(2015, time.May, 19)},
		{"bytes", []byte("2011-11-18"), NewDate(2011, time.November, 18)},
		{"timestamp string", "1992-07-15T00:00:00Z", NewDate(1992, time.July, 15)},
		{"null", nil, Date{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tc.src))
			assert.Equal(t, tc.want, d)
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2020, time.September, 17).Value()
	require.NoError(t, err)
	assert.Equal(t, "2020-09-17", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(struct {
		Price decimal.Decimal `json:"price"`
	}{decimal.RequireFromString("24.99")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":24.99}`, string(out))
}

func TestHasPriceScale(t *testing.T) {
	for _, p := range []string{"24.99", "24.990", "1000", "0.01"} {
		assert.True(t, HasPriceScale(decimal.RequireFromString(p)), p)
	}
	for _, p := range []string{"24.999", "0.014", "0.001"} {
		assert.False(t, HasPriceScale(decimal.RequireFromString(p)), p)
	}
}
