package report

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/goodsign/monday"
	"github.com/olekukonko/tablewriter"

	"github.com/sambeau/distress/store"
)

// RenderHistory writes recorded runs as a table. Timestamps are formatted
// for locale in the local time zone.
func RenderHistory(w io.Writer, runs []store.Run, locale string) {
	if len(runs) == 0 {
		io.WriteString(w, "no runs recorded\n")
		return
	}

	loc := mondayLocale(locale)
	layout := timestampLayout(loc)
	p := numberPrinter(locale)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"When", "Source", "Packets", "Sum", "Key", "Elapsed", "ID"})
	table.SetAutoWrapText(false)
	for _, r := range runs {
		table.Append([]string{
			monday.Format(r.CreatedAt.Local(), layout, loc),
			r.Source,
			p.Sprintf("%d", r.Packets),
			p.Sprintf("%d", r.InOrderSum),
			p.Sprintf("%d", r.DecoderKey),
			humanize.SIWithDigits(r.Elapsed.Seconds(), 1, "s"),
			shortID(r.ID),
		})
	}
	table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
