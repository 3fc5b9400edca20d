package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/tartampluch/go-datefield/internal/config"
)

// Capture group names of the input grammar.
const (
	groupDay   = "day"
	groupMonth = "month"
	groupYear  = "year"
	groupHours = "hours"
	groupMins  = "mins"
	groupSecs  = "secs"
)

// inputPattern is the single-pass grammar for free-text dates:
//
//	D[D] sep (M[M] | MonthName) [sep Y[YYY]] [sep h[h] [sep m[m] [sep s[s]]]]
//
// sep is any run of space / . - (plus : before minutes and seconds).
// The year may not be followed by ':' so that "5 3 09:30" reads 09 as hours.
var inputPattern *regexp2.Regexp

func init() {
	inputPattern = regexp2.MustCompile(""+
		`^(?<day>[0-9]{1,2})[ /.-]+`+
		`(?<month>[a-z]{`+strconv.Itoa(config.MinMonthNameLen)+`,}|[0-9]{1,2})`+
		`(?:[ /.-]+(?<year>[0-9]{1,4})(?!:))?`+
		`(?:[ /.-]+(?<hours>[0-9]{1,2}))?`+
		`(?:[ /.:-]+(?<mins>[0-9]{1,2}))?`+
		`(?:[ /.:-]+(?<secs>[0-9]{1,2}))?`+
		`\s*$`,
		regexp2.IgnoreCase,
	)
	inputPattern.MatchTimeout = config.ParseMatchTimeout
}

// Parser turns free text into a Date. The Clock supplies the year when the
// input has none.
type Parser struct {
	Clock Clock
}

// NewParser returns a Parser using clock, or the real clock when clock is nil.
func NewParser(clock Clock) *Parser {
	if clock == nil {
		clock = RealClock{}
	}
	return &Parser{Clock: clock}
}

// Parse reads text into a Date. On rejection it returns the zero Date and an
// error wrapping ErrMalformedInput or ErrOutOfRange.
func (p *Parser) Parse(text string) (Date, error) {
	m, err := inputPattern.FindStringMatch(text)
	if err != nil || m == nil {
		return Date{}, malformedError(text, err)
	}

	var d Date

	day, _ := strconv.Atoi(groupText(m, groupDay))
	if day < config.MinDay || day > config.MaxDay {
		return Date{}, outOfRangeError(Day, day)
	}
	d.Day = day

	month, err := parseMonth(groupText(m, groupMonth))
	if err != nil {
		return Date{}, err
	}
	d.Month = month

	// Single-step rollover into the following month. With day capped at 31
	// and every month at least 28 days long, one step always lands in range.
	if d.Day > DaysIn(d.Month) {
		d.Day -= DaysIn(d.Month)
		d.Month = (d.Month + 1) % len(config.MonthNames)
	}

	d.Year = p.parseYear(groupText(m, groupYear))

	if d.Hours, err = parseClockField(m, groupHours, Hours, config.MaxHours); err != nil {
		return Date{}, err
	}
	if d.Mins, err = parseClockField(m, groupMins, Mins, config.MaxMins); err != nil {
		return Date{}, err
	}
	if d.Secs, err = parseClockField(m, groupSecs, Secs, config.MaxSecs); err != nil {
		return Date{}, err
	}

	return d, nil
}

// MonthByPrefix resolves a case-insensitive prefix to a zero-based month.
// The first month in calendar order whose name starts with prefix wins.
func MonthByPrefix(prefix string) (int, bool) {
	if prefix == "" {
		return 0, false
	}
	for i, name := range config.MonthNames {
		if len(prefix) <= len(name) && strings.EqualFold(name[:len(prefix)], prefix) {
			return i, true
		}
	}
	return 0, false
}

func parseMonth(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		month, ok := MonthByPrefix(token)
		if !ok {
			return 0, fmt.Errorf("%w: %s %q", ErrOutOfRange, config.ErrUnknownMonth, token)
		}
		return month, nil
	}
	if n < config.MinMonth+1 || n > config.MaxMonth+1 {
		return 0, outOfRangeError(Month, n)
	}
	return n - 1, nil
}

func (p *Parser) parseYear(token string) int {
	if token == "" {
		return p.Clock.Now().Year()
	}
	year, _ := strconv.Atoi(token)
	if len(token) < config.ThreeDigitYear {
		year += config.TwoDigitYearBase
	}
	return year
}

func parseClockField(m *regexp2.Match, group string, f Field, limit int) (int, error) {
	token := groupText(m, group)
	if token == "" {
		return 0, nil
	}
	v, _ := strconv.Atoi(token)
	if v > limit {
		return 0, outOfRangeError(f, v)
	}
	return v, nil
}

// groupText returns the text captured by a named group, or "" when the
// optional group did not participate in the match.
func groupText(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}
