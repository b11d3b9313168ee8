package mrd

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformLifetime2002_Bounds(t *testing.T) {
	assert.Equal(t, 70, UniformLifetime2002.FirstAge())
	assert.Equal(t, 115, UniformLifetime2002.LastAge())
	assert.Equal(t, 72, UniformLifetime2022.FirstAge())
	assert.Equal(t, 120, UniformLifetime2022.LastAge())
}

func TestTableRate(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
		age   int
		want  float64
	}{
		{"below first age", UniformLifetime2002, 69, 0},
		{"first row 2002", UniformLifetime2002, 70, 1 / 27.4},
		{"age 85 2002", UniformLifetime2002, 85, 1 / 14.8},
		{"last row 2002", UniformLifetime2002, 115, 1 / 1.9},
		{"beyond last row reuses last divisor", UniformLifetime2002, 130, 1 / 1.9},
		{"2022 below first age", UniformLifetime2022, 71, 0},
		{"2022 first row", UniformLifetime2022, 72, 1 / 27.4},
		{"2022 age 100", UniformLifetime2022, 100, 1 / 6.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.table.Rate(tt.age), 1e-12)
		})
	}
}

func TestTableRate_IncreasesWithAge(t *testing.T) {
	for _, table := range []*Table{UniformLifetime2002, UniformLifetime2022} {
		prev := 0.0
		for age := table.FirstAge(); age <= table.LastAge(); age++ {
			r := table.Rate(age)
			assert.Greater(t, r, prev, "%s age %d", table.Name(), age)
			prev = r
		}
	}
}

func TestDivisor(t *testing.T) {
	d, ok := UniformLifetime2002.Divisor(75)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromFloat(22.9)), "got %s", d)

	_, ok = UniformLifetime2002.Divisor(50)
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	table, err := Lookup("")
	require.NoError(t, err)
	assert.Same(t, Default, table)

	table, err = Lookup(" Uniform-2022 ")
	require.NoError(t, err)
	assert.Same(t, UniformLifetime2022, table)

	_, err = Lookup("joint-life")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uniform-2002")
}

func TestScheduleFunc(t *testing.T) {
	var s Schedule = ScheduleFunc(func(age int) float64 { return float64(age) / 1000 })
	assert.InDelta(t, 0.07, s.Rate(70), 1e-12)
}
