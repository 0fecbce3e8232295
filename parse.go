package socialstats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	dps "github.com/markusmobius/go-dateparser"
)

var countPattern = regexp.MustCompile(`(\d[\d.,]*(?:\s\d[\d.,]*)*)\s*(\pL*)`)

// magnitudes maps the words and letters that may follow an abbreviated
// count to their multiplier.
var magnitudes = map[string]float64{
	"k": 1e3, "thousand": 1e3, "bin": 1e3,
	"m": 1e6, "mn": 1e6, "mio": 1e6, "million": 1e6, "milyon": 1e6,
	"b": 1e9, "bn": 1e9, "billion": 1e9, "milyar": 1e9,
}

// ParseCount converts displayed counter text such as "1.2M", "3K" or
// "12,345" into an integer. Text without digits and values outside the
// int64 range parse to 0.
func ParseCount(text string) int64 {
	m := countPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	number := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, m[1])

	multiplier, ok := magnitudes[strings.ToLower(m[2])]
	if !ok {
		digits := strings.NewReplacer(".", "", ",", "").Replace(number)
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	// Abbreviated values use a single decimal separator, either "." or ",".
	number = strings.ReplaceAll(number, ",", ".")
	if strings.Count(number, ".") > 1 {
		number = strings.Replace(number, ".", "", strings.Count(number, ".")-1)
	}
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	v := math.Round(f * multiplier)
	if math.IsNaN(v) || v < 0 || v >= math.MaxInt64 {
		return 0
	}
	return int64(v)
}

var relativePattern = regexp.MustCompile(`(\d+|an?|bir)\s*([a-zçğıöşü]+)\s*(?:ago|önce)`)

// relativeUnits maps English and Turkish unit words to a unit key.
var relativeUnits = map[string]string{
	"s": "second", "sec": "second", "secs": "second", "second": "second", "seconds": "second",
	"saniye": "second", "sn": "second",
	"m": "minute", "min": "minute", "mins": "minute", "minute": "minute", "minutes": "minute",
	"dakika": "minute", "dk": "minute",
	"h": "hour", "hr": "hour", "hrs": "hour", "hour": "hour", "hours": "hour",
	"saat": "hour", "sa": "hour",
	"d": "day", "day": "day", "days": "day",
	"gün": "day", "gun": "day", "g": "day",
	"w": "week", "wk": "week", "wks": "week", "week": "week", "weeks": "week",
	"hafta": "week", "hf": "week",
	"mo": "month", "month": "month", "months": "month",
	"ay": "month",
	"y": "year", "yr": "year", "yrs": "year", "year": "year", "years": "year",
	"yıl": "year", "yil": "year",
}

// shortUnits are the abbreviated unit spellings of compact labels such as
// "3d ago" or "5 dk önce". They are read without the date parser.
var shortUnits = map[string]bool{
	"s": true, "sec": true, "secs": true, "sn": true,
	"m": true, "min": true, "mins": true, "dk": true,
	"h": true, "hr": true, "hrs": true, "sa": true,
	"d": true, "g": true,
	"w": true, "wk": true, "wks": true, "hf": true,
	"mo": true,
	"y": true, "yr": true, "yrs": true,
}

var relativeMarker = regexp.MustCompile(`(?:^|[^\pL])(?:ago|önce|yesterday|dün)(?:[^\pL]|$)`)

var dateParser = &dps.Parser{}

// ParseRelativeTime interprets text such as "3 days ago", "2 hafta önce" or
// "5h ago" relative to now. Months and years are subtracted on the
// calendar. Unrecognized text yields now.
func ParseRelativeTime(text string, now time.Time) time.Time {
	text = strings.ToLower(strings.TrimSpace(text))
	if !relativeMarker.MatchString(text) {
		return now
	}
	if m := relativePattern.FindStringSubmatch(text); m != nil && shortUnits[m[2]] {
		return subtract(m, now)
	}
	dt, err := dateParser.Parse(&dps.Configuration{CurrentTime: now, Languages: []string{"en", "tr"}}, text)
	if err == nil && !dt.Time.IsZero() {
		return dt.Time.In(now.Location())
	}
	if m := relativePattern.FindStringSubmatch(text); m != nil {
		return subtract(m, now)
	}
	return now
}

// subtract applies a match of relativePattern to now.
func subtract(m []string, now time.Time) time.Time {
	unit, ok := relativeUnits[m[2]]
	if !ok {
		return now
	}
	n := 1
	if v, err := strconv.Atoi(m[1]); err == nil {
		n = v
	}

	switch unit {
	case "second":
		return now.Add(-time.Duration(n) * time.Second)
	case "minute":
		return now.Add(-time.Duration(n) * time.Minute)
	case "hour":
		return now.Add(-time.Duration(n) * time.Hour)
	case "day":
		return now.Add(-time.Duration(n) * 24 * time.Hour)
	case "week":
		return now.Add(-time.Duration(n) * 7 * 24 * time.Hour)
	case "month":
		return now.AddDate(0, -n, 0)
	case "year":
		return now.AddDate(-n, 0, 0)
	}
	return now
}

// ParseTimestamp parses an absolute timestamp attribute such as the
// datetime attribute of a time element. It reports false when the value
// is not a recognizable timestamp.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
