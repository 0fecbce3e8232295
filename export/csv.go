package export

import (
	"strings"

	"github.com/fwojciec/socialstats"
)

// CSV renders records with the platform's header row. Captions are always
// quoted with inner quotes doubled, counts are bare integers and dates are
// ISO-8601 timestamps in UTC.
func CSV(records []*socialstats.Record, platform socialstats.Platform) []byte {
	cols := columns(platform, func(r *socialstats.Record) string {
		return r.Time().Format("2006-01-02T15:04:05.000Z")
	})

	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.header)
	}
	for _, r := range records {
		b.WriteByte('\n')
		for i, c := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			v := c.value(r)
			if c.header == captionColumn.header {
				v = quote(v)
			}
			b.WriteString(v)
		}
	}
	return []byte(b.String())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
