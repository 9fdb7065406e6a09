package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadysun/steadysun-go/forecast"
)

func TestPrinter(t *testing.T) {
	value := map[string]any{"name": "roof", "peak": 3000}
	table := func(w io.Writer) error {
		fmt.Fprintln(w, "NAME\tPEAK")
		fmt.Fprintln(w, "roof\t3000")
		return nil
	}

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: "{\n  \"name\": \"roof\",\n  \"peak\": 3000\n}\n"},
		{format: "yaml", want: "name: roof\npeak: 3000\n"},
		{format: "table", want: "NAME  PEAK\nroof  3000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, newPrinter(&buf, tt.format).print(value, table))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestForecastOutput(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	table := &forecast.Table{
		Index:   []time.Time{ts, ts.Add(15 * time.Minute)},
		Columns: []string{"ghi", "t2m"},
		Data:    [][]float64{{120.5, 18}, {math.NaN(), 18.25}},
	}

	doc := forecastOutput(table)
	assert.Equal(t, []string{"2024-06-01T12:00:00Z", "2024-06-01T12:15:00Z"}, doc.Index)
	require.NotNil(t, doc.Data[0][0])
	assert.Equal(t, 120.5, *doc.Data[0][0])
	assert.Nil(t, doc.Data[1][0])

	var buf bytes.Buffer
	require.NoError(t, writeForecastTable(&buf, table))
	assert.Equal(t,
		"TIME\tghi\tt2m\n"+
			"2024-06-01T12:00:00Z\t120.5\t18\n"+
			"2024-06-01T12:15:00Z\t-\t18.25\n",
		buf.String())
}
