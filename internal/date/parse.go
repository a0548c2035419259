package date

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// MaxYearsAhead bounds how far in the future a parsed date may land.
const MaxYearsAhead = 10

// ParseError reports input the parser could not turn into a date.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Reason
	}
	return fmt.Sprintf("%q: %s", e.Input, e.Reason)
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// Tried in order; the first layout that parses wins. Layouts without a year
// resolve into the current year.
var layouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2/1/2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January",
	"2 Jan",
	"January 2",
	"Jan 2",
}

var inPattern = regexp.MustCompile(`^in (\S+) (days?|weeks?|months?|years?)$`)

// Largest amount per unit that can still land inside the MaxYearsAhead window.
// Anything above is rejected before the arithmetic can overflow.
var maxAmount = map[string]int{
	"day":   366 * MaxYearsAhead,
	"week":  53 * MaxYearsAhead,
	"month": 12 * MaxYearsAhead,
	"year":  MaxYearsAhead,
}

var errTooFar = errors.New("date too far in the future")

// calendar returns a jinzhu/now wrapper around clock with Monday-start weeks
// and the library's default layouts for lenient parsing.
func calendar(clock time.Time) *now.Now {
	cfg := &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: clock.Location(),
		TimeFormats:  now.TimeFormats,
	}
	return cfg.With(clock)
}

// Parser resolves free-form due-date expressions relative to its clock.
type Parser struct {
	clock func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock overrides the time source used to determine "today".
func WithClock(clock func() time.Time) Option {
	return func(p *Parser) {
		p.clock = clock
	}
}

// NewParser returns a parser using the local wall clock unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{clock: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse resolves input with a wall-clock parser.
func Parse(input string) (Date, error) {
	return NewParser().Parse(input)
}

// Parse resolves input to a calendar date. Empty input means today. Any
// input it cannot resolve, and any result more than MaxYearsAhead years out,
// is reported as a *ParseError; it never falls back to today on failure.
func (p *Parser) Parse(input string) (Date, error) {
	clock := p.clock()
	today := Of(clock)
	expr := strings.ToLower(strings.Join(strings.Fields(input), " "))

	d, err := p.resolve(expr, clock, today)
	if err != nil {
		return Date{}, &ParseError{Input: input, Reason: err.Error()}
	}
	if d.After(today.AddYears(MaxYearsAhead)) {
		return Date{}, &ParseError{Input: input, Reason: errTooFar.Error()}
	}
	return d, nil
}

func (p *Parser) resolve(expr string, clock time.Time, today Date) (Date, error) {
	if expr == "" {
		return today, nil
	}

	if d, ok := literal(expr, clock, today); ok {
		return d, nil
	}

	if strings.HasPrefix(expr, "in ") {
		return relative(expr, today)
	}

	// "next week|month|year" are literals; only weekdays remain here.
	if token, ok := strings.CutPrefix(expr, "next "); ok {
		if wd, ok := weekdays[token]; ok {
			return nextWeekday(today, wd), nil
		}
		return Date{}, fmt.Errorf("unknown period %q after \"next\"", token)
	}

	return structured(expr, clock)
}

func literal(expr string, clock time.Time, today Date) (Date, bool) {
	if wd, ok := weekdays[expr]; ok {
		return nextWeekday(today, wd), true
	}

	switch expr {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDays(1), true
	case "yesterday":
		return today.AddDays(-1), true
	case "next week":
		return today.AddDays(7), true
	case "next month":
		return today.AddMonths(1), true
	case "next year":
		return today.AddYears(1), true
	case "end of week":
		return Of(calendar(clock).EndOfWeek()), true
	case "end of month":
		return Of(calendar(clock).EndOfMonth()), true
	case "end of year":
		return Of(calendar(clock).EndOfYear()), true
	}
	return Date{}, false
}

// nextWeekday returns the next occurrence of wd strictly after today.
func nextWeekday(today Date, wd time.Weekday) Date {
	days := int(wd - today.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDays(days)
}

func relative(expr string, today Date) (Date, error) {
	m := inPattern.FindStringSubmatch(expr)
	if m == nil {
		return Date{}, fmt.Errorf("expected \"in <number> <days|weeks|months|years>\"")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Date{}, fmt.Errorf("%q is not a whole number", m[1])
	}
	if n <= 0 {
		return Date{}, fmt.Errorf("amount must be positive, got %d", n)
	}

	unit := strings.TrimSuffix(m[2], "s")
	if n > maxAmount[unit] {
		return Date{}, errTooFar
	}

	switch unit {
	case "day":
		return today.AddDays(n), nil
	case "week":
		return today.AddDays(7 * n), nil
	case "month":
		return today.AddMonths(n), nil
	default:
		return today.AddYears(n), nil
	}
}

func structured(expr string, clock time.Time) (Date, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, expr)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			return New(clock.Year(), t.Month(), t.Day()), nil
		}
		return Of(t), nil
	}

	if t, err := calendar(clock).Parse(expr); err == nil {
		return Of(t), nil
	}
	return Date{}, fmt.Errorf("unrecognized date")
}
