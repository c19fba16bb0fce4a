package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sambeau/distress/config"
	"github.com/sambeau/distress/pkg/packet/packet"
	"github.com/sambeau/distress/pkg/packet/solve"
	"github.com/sambeau/distress/store"
)

// Both pairs are in order; the dividers land at 2 and 6.
const input = "[1]\n[3]\n\n[[4]]\n[5]\n"

func solved(t *testing.T) *solve.Report {
	t.Helper()
	packets, err := packet.Parse(input)
	require.NoError(t, err)
	r, err := solve.Run(packets, solve.Options{})
	require.NoError(t, err)
	return r
}

func render(t *testing.T, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, solved(t), opts))
	return buf.String()
}

func TestRenderText(t *testing.T) {
	out := render(t, Options{Format: config.FormatText, Locale: "en"})
	require.Contains(t, out, "Packets:         4\n")
	require.Contains(t, out, "Pairs in order:  3 (sum of indices)\n")
	require.Contains(t, out, "Decoder key:     12 (dividers at 2, 6)\n")
	require.Contains(t, out, "Elapsed:")
	require.NotContains(t, out, "Undetermined")
	require.NotContains(t, out, "== Pair")
}

func TestRenderTextTrace(t *testing.T) {
	out := render(t, Options{Trace: true})
	require.Contains(t, out, "== Pair 1 ==\n[1]\n[3]\npackets are in the right order\n")
	require.Contains(t, out, "== Sorted ==\n[1]\n[[2]]  <- divider\n[3]\n[[4]]\n[5]\n[[6]]  <- divider\n")
}

func TestRenderTextUndetermined(t *testing.T) {
	packets, err := packet.Parse("[1]\n[1]\n")
	require.NoError(t, err)
	r, err := solve.Run(packets, solve.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, Options{}))
	require.Contains(t, buf.String(), "Undetermined:    1")
	require.Contains(t, buf.String(), "Pairs in order:  0")
}

func TestRenderJSON(t *testing.T) {
	var s Summary
	require.NoError(t, json.Unmarshal([]byte(render(t, Options{Format: config.FormatJSON})), &s))
	require.Equal(t, 4, s.Packets)
	require.Equal(t, 3, s.InOrderSum)
	require.Equal(t, 12, s.DecoderKey)
	require.Equal(t, []DividerSummary{{"[[2]]", 2}, {"[[6]]", 6}}, s.Dividers)
	require.Nil(t, s.Pairs)
	require.Nil(t, s.Sorted)
}

func TestRenderJSONTrace(t *testing.T) {
	var s Summary
	require.NoError(t, json.Unmarshal([]byte(render(t, Options{Format: config.FormatJSON, Trace: true})), &s))
	require.Len(t, s.Pairs, 2)
	require.Equal(t, PairSummary{Index: 2, Left: "[[4]]", Right: "[5]", Result: "in-order"}, s.Pairs[1])
	require.Equal(t, []string{"[1]", "[[2]]", "[3]", "[[4]]", "[5]", "[[6]]"}, s.Sorted)
}

func TestRenderYAML(t *testing.T) {
	out := render(t, Options{Format: config.FormatYAML})
	require.Contains(t, out, "decoder_key: 12\n")

	var s Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	require.Equal(t, 3, s.InOrderSum)
	require.Len(t, s.Dividers, 2)
}

func TestRenderMarkdown(t *testing.T) {
	out := render(t, Options{Format: config.FormatMarkdown, Trace: true})
	require.True(t, strings.HasPrefix(out, "# Packet report\n"))
	require.Contains(t, out, "| Decoder key | 12 |\n")
	require.Contains(t, out, "| Divider `[[6]]` | position 6 |\n")
	require.Contains(t, out, "| 1 | `[1]` | `[3]` | in-order |\n")
	require.Contains(t, out, "2. `[[2]]` *(divider)*\n")
}

func TestRenderHTML(t *testing.T) {
	out := render(t, Options{Format: config.FormatHTML})
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, "<h1>Packet report</h1>")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<td>12</td>")
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, solved(t), Options{Format: "pdf"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "pdf")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Output.Trace = true
	opts := OptionsFromConfig(cfg.Output)
	require.Equal(t, Options{Format: "text", Trace: true, Color: true, Locale: "en"}, opts)
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	RenderHistory(&buf, nil, "en")
	require.Equal(t, "no runs recorded\n", buf.String())

	buf.Reset()
	RenderHistory(&buf, []store.Run{{
		ID:         "0123456789abcdef",
		CreatedAt:  time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
		Source:     "input.txt",
		Packets:    1500,
		InOrderSum: 13,
		DecoderKey: 140,
		Elapsed:    3 * time.Millisecond,
	}}, "en")
	out := buf.String()
	require.Contains(t, out, "WHEN")
	require.Contains(t, out, "input.txt")
	require.Contains(t, out, "1,500")
	require.Contains(t, out, "01234567")
	require.NotContains(t, out, "89abcdef")
}

func TestMondayLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   monday.Locale
	}{
		{"en", monday.LocaleEnUS},
		{"en-GB", monday.LocaleEnGB},
		{"de_AT", monday.LocaleDeDE},
		{"pt_pt", monday.LocalePtPT},
		{"xx", monday.LocaleEnUS},
		{"", monday.LocaleEnUS},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			require.Equal(t, tt.want, mondayLocale(tt.locale))
		})
	}
}

func TestNumberPrinter(t *testing.T) {
	require.Equal(t, "1,500", numberPrinter("en").Sprintf("%d", 1500))
	require.Equal(t, "1.500", numberPrinter("de_de").Sprintf("%d", 1500))
	require.Equal(t, "1,500", numberPrinter("not a locale").Sprintf("%d", 1500))
}
