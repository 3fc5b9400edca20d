package engine

import "github.com/tartampluch/go-datefield/internal/config"

// Direction of a field step.
type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

func (dir Direction) String() string {
	if dir == Down {
		return "down"
	}
	return "up"
}

// Range is the inclusive value range of a field.
type Range struct {
	Min int
	Max int
}

var staticRanges = map[Field]Range{
	Year:  {Min: config.MinYear, Max: config.MaxYear},
	Month: {Min: config.MinMonth, Max: config.MaxMonth},
	Hours: {Min: 0, Max: config.MaxHours},
	Mins:  {Min: 0, Max: config.MaxMins},
	Secs:  {Min: 0, Max: config.MaxSecs},
}

// carryGraph maps each field to the coarser field it rolls into when cascading.
var carryGraph = map[Field]Field{
	Secs:  Mins,
	Mins:  Hours,
	Hours: Day,
	Day:   Month,
	Month: Year,
}

// Bounds returns the range of f for d. The day range depends on d.Month.
func Bounds(d Date, f Field) Range {
	if f == Day {
		return Range{Min: config.MinDay, Max: DaysIn(d.Month)}
	}
	return staticRanges[f]
}

// CarryTarget returns the field f rolls into, if any. Year has none.
func CarryTarget(f Field) (Field, bool) {
	next, ok := carryGraph[f]
	return next, ok
}

// Command is one edit request from a front-end.
type Command struct {
	Field     Field
	Direction Direction
	Cascade   bool
}

// Step moves field f of d one unit in dir and returns the new Date.
// A step past the end of the range wraps around; with cascade set the wrap
// also steps the next coarser field, and so on up the carry chain.
// Step does not clamp the day; see Clamp and Apply.
func Step(d Date, f Field, dir Direction, cascade bool) Date {
	next := d
	for hops := 0; hops < len(Fields); hops++ {
		var wrapped bool
		next, wrapped = stepField(next, f, dir, cascade)
		if !wrapped || !cascade {
			break
		}
		coarser, ok := CarryTarget(f)
		if !ok {
			break
		}
		f = coarser
	}
	return next
}

func stepField(d Date, f Field, dir Direction, cascade bool) (Date, bool) {
	r := Bounds(d, f)
	v := d.Get(f)

	switch dir {
	case Up:
		if v == r.Max {
			return d.With(f, r.Min), true
		}
		return d.With(f, v+1), false
	case Down:
		if v == r.Min {
			if f == Day && cascade {
				return d.With(f, DaysIn(previousMonth(d.Month))), true
			}
			return d.With(f, r.Max), true
		}
		return d.With(f, v-1), false
	}
	return d, false
}

func previousMonth(month int) int {
	if month == config.MinMonth {
		return config.MaxMonth
	}
	return month - 1
}

// Clamp reduces the day to the length of the month when it overshoots.
// It never advances the month.
func Clamp(d Date) Date {
	if limit := DaysIn(d.Month); d.Day > limit {
		d.Day = limit
	}
	return d
}

// Apply is the edit reducer: it steps the commanded field, then clamps the
// day to the resulting month.
func Apply(d Date, c Command) Date {
	return Clamp(Step(d, c.Field, c.Direction, c.Cascade))
}
