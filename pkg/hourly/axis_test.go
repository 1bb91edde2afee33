package hourly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsCoverOperatingHours(t *testing.T) {
	labels := Labels()
	require.Len(t, labels, 16)
	assert.Equal(t, "6:00 - 7:00", labels[0])
	assert.Equal(t, "21:00 - 22:00", labels[15])

	labels[0] = "mutated"
	assert.Equal(t, "6:00 - 7:00", Labels()[0])
}

func TestLabelFor(t *testing.T) {
	label, err := LabelFor(9)
	require.NoError(t, err)
	assert.Equal(t, "9:00 - 10:00", label)

	for _, hour := range []int{-1, 0, 5, 22, 23} {
		_, err := LabelFor(hour)
		assert.True(t, errors.Is(err, ErrHourOutOfRange), "hour %d", hour)
	}
}

func TestIndexOf(t *testing.T) {
	i, ok := IndexOf("14:00 - 15:00")
	assert.True(t, ok)
	assert.Equal(t, 8, i)

	_, ok = IndexOf("23:00 - 0:00")
	assert.False(t, ok)
	_, ok = IndexOf("9:00-10:00")
	assert.False(t, ok)
}

func TestShiftWindow(t *testing.T) {
	w, ok := ShiftWindow(ShiftFirst)
	require.True(t, ok)
	assert.Equal(t, Window{Start: 6, End: 14}, w)
	assert.Equal(t, 8, w.Hours())

	w, ok = ShiftWindow(ShiftSecond)
	require.True(t, ok)
	assert.Equal(t, Window{Start: 14, End: 22}, w)

	_, ok = ShiftWindow("3rd Shift-(10pm-6am)")
	assert.False(t, ok)
	assert.Equal(t, []string{ShiftFirst, ShiftSecond}, Shifts())
}

func TestNumberAxisCases(t *testing.T) {
	cases := map[string]struct {
		in   interface{}
		want float64
	}{
		"int":          {in: 7, want: 7},
		"float":        {in: 2.5, want: 2.5},
		"numeric text": {in: "12", want: 12},
		"padded text":  {in: "  3.5 ", want: 3.5},
		"empty text":   {in: "", want: 0},
		"garbage":      {in: "n/a", want: 0},
		"nan text":     {in: "NaN", want: 0},
		"inf text":     {in: "Inf", want: 0},
		"nil":          {in: nil, want: 0},
		"true":         {in: true, want: 1},
		"false":        {in: false, want: 0},
		"slice":        {in: []int{1}, want: 0},
		"negative":     {in: -4, want: -4},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Number(tc.in))
		})
	}
}
