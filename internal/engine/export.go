package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-datefield/internal/config"
)

// Exporter renders a committed Date as a one-event iCalendar feed.
type Exporter struct {
	Clock Clock // Source of DTSTAMP.

	// Location of the floating DTSTART. Nil means time.Local.
	Location *time.Location

	// FormatSummary lets the UI inject a localized event title.
	FormatSummary func(d Date) string
}

// Export encodes d as a VCALENDAR holding a single VEVENT. A non-empty
// reminderTrigger (ISO-8601 duration such as "-P1D") adds a DISPLAY alarm.
func (e *Exporter) Export(d Date, reminderTrigger string) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	clock := e.Clock
	if clock == nil {
		clock = RealClock{}
	}
	loc := e.Location
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	summary := fmt.Sprintf(config.FallbackSummary, d.String())
	if e.FormatSummary != nil {
		summary = e.FormatSummary(d)
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, feedUID())
	event.Props.SetText(config.PropSummary, summary)

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(clock.Now().UTC())
	event.Props.Set(stamp)

	start := ical.NewProp(config.PropDTStart)
	start.SetDateTime(d.Time(loc))
	event.Props.Set(start)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgExportFinished,
		config.LogKeyComponent, config.CompExporter,
		config.LogKeyValue, d.String(),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

// feedUID does not depend on the date, so subscribed calendar clients
// replace the event when the date changes instead of adding a new one.
func feedUID() string {
	input := fmt.Sprintf(config.FormatHashInput, config.AppID, config.ICalCalName, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
