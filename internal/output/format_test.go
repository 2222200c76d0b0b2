package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/output"
)

func TestFormatter_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	require.NoError(t, f.Print(map[string]string{"key": "value"}))

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "value", result["key"])
	assert.True(t, f.IsJSON())
}

func TestFormatter_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	require.NoError(t, f.Print("hello world"))
	require.NoError(t, f.Printf("height %d\n", 42))
	assert.Equal(t, "hello world\nheight 42\n", buf.String())
	assert.False(t, f.IsJSON())
}

func TestFormatter_AutoResolvesToJSONOffTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatAuto, &buf)
	assert.Equal(t, output.FormatJSON, f.Format())
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
}

func TestFormatter_Record(t *testing.T) {
	t.Parallel()

	fields := []output.Field{
		{Key: "Network", Value: "mainnet"},
		{Key: "Daemon height", Value: "3100000"},
	}
	payload := map[string]any{"network": "mainnet", "daemon_height": 3100000}

	var text bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatText, &text).Record(payload, fields))
	assert.Equal(t, "Network:        mainnet\nDaemon height:  3100000\n", text.String())

	var js bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatJSON, &js).Record(payload, fields))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.InDelta(t, 3100000, decoded["daemon_height"], 0)
}

func TestFormatter_Rows(t *testing.T) {
	t.Parallel()

	table := output.NewTable("NAME", "PORT").AlignRight(1)
	table.AddRow("agor.ist", "18089")

	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatText, &buf).Rows([]string{"agor.ist"}, table))
	assert.Equal(t, table.String(), buf.String())

	buf.Reset()
	require.NoError(t, output.NewFormatter(output.FormatJSON, &buf).Rows([]string{"agor.ist"}, table))
	assert.JSONEq(t, `["agor.ist"]`, buf.String())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  output.Format
	}{
		{"json", output.FormatJSON},
		{" JSON ", output.FormatJSON},
		{"text", output.FormatText},
		{"auto", output.FormatAuto},
		{"", output.FormatAuto},
		{"yaml", output.FormatAuto},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, output.ParseFormat(tc.input))
		})
	}
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	table := output.NewTable("#", "ADDRESS", "AMOUNT").AlignRight(2)
	table.AddRow("0", "44Affq...", "1.5")
	table.AddRow("12", "8BxyzQ...", "0.000000000001")

	want := "" +
		"#   ADDRESS            AMOUNT\n" +
		"--  ---------  --------------\n" +
		"0   44Affq...             1.5\n" +
		"12  8BxyzQ...  0.000000000001\n"
	assert.Equal(t, want, table.String())
	assert.Equal(t, 2, table.Len())
	assert.Empty(t, output.NewTable().String())
}
