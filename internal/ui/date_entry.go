package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/tartampluch/go-datefield/internal/engine"
)

// DateEntry is a single-line Entry that reads free-text dates.
// Enter or focus loss commits the text; Up/Down then step the field under the
// cursor, and Ctrl+Up/Ctrl+Down carry into coarser fields.
type DateEntry struct {
	widget.Entry

	session *engine.Session

	OnCommitted func(d engine.Date)
	OnRejected  func(text string, err error)
	OnStepped   func(d engine.Date, f engine.Field)
}

// NewDateEntry creates a DateEntry reading input with parser.
func NewDateEntry(parser *engine.Parser) *DateEntry {
	entry := &DateEntry{session: engine.NewSession(parser)}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune edits the raw text; the value is no longer steppable until committed.
func (e *DateEntry) TypedRune(r rune) {
	e.session.Edit()
	e.Entry.TypedRune(r)
}

// TypedKey intercepts commit and stepping keys and forwards the rest.
func (e *DateEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		e.Commit()
	case fyne.KeyUp:
		e.step(engine.Up, false)
	case fyne.KeyDown:
		e.step(engine.Down, false)
	case fyne.KeyBackspace, fyne.KeyDelete:
		e.session.Edit()
		e.Entry.TypedKey(key)
	default:
		e.Entry.TypedKey(key)
	}
}

// TypedShortcut handles Ctrl+Up/Ctrl+Down. Shortcuts that rewrite the text
// (paste, cut, undo, redo) count as typing.
func (e *DateEntry) TypedShortcut(s fyne.Shortcut) {
	if cs, ok := s.(*desktop.CustomShortcut); ok && cs.Modifier == fyne.KeyModifierControl {
		switch cs.KeyName {
		case fyne.KeyUp:
			e.step(engine.Up, true)
			return
		case fyne.KeyDown:
			e.step(engine.Down, true)
			return
		}
	}

	switch s.(type) {
	case *fyne.ShortcutPaste, *fyne.ShortcutCut, *fyne.ShortcutUndo, *fyne.ShortcutRedo:
		e.session.Edit()
	}
	e.Entry.TypedShortcut(s)
}

// FocusLost commits pending text before releasing focus.
func (e *DateEntry) FocusLost() {
	if e.Text != "" {
		e.Commit()
	}
	e.Entry.FocusLost()
}

// Commit parses the current text. A rejected text stays on screen as typed.
// Nothing happens while the text still shows the committed value.
func (e *DateEntry) Commit() {
	if e.inSync() {
		return
	}

	text := e.Text
	d, err := e.session.Commit(text)
	if err != nil {
		slog.Info(config.MsgDateRejected,
			config.LogKeyComponent, config.CompEntry,
			config.LogKeyInput, text,
			config.LogKeyError, err)
		if e.OnRejected != nil {
			e.OnRejected(text, err)
		}
		return
	}

	e.SetText(d.String())
	slog.Debug(config.MsgDateCommitted,
		config.LogKeyComponent, config.CompEntry,
		config.LogKeyValue, d.String())
	if e.OnCommitted != nil {
		e.OnCommitted(d)
	}
}

// SetDate shows d as a committed value without firing OnCommitted.
func (e *DateEntry) SetDate(d engine.Date) {
	e.session.Seed(d)
	d, _ = e.session.Date()
	e.SetText(d.String())
}

// Date returns the committed value and whether the text still matches it.
func (e *DateEntry) Date() (engine.Date, bool) {
	return e.session.Date()
}

// inSync reports whether the text on screen is the rendering of the
// committed value. Any other text drops the parsed state.
func (e *DateEntry) inSync() bool {
	d, parsed := e.session.Date()
	if parsed && e.Text != d.String() {
		e.session.Edit()
		return false
	}
	return parsed
}

func (e *DateEntry) step(dir engine.Direction, cascade bool) {
	if !e.inSync() {
		return
	}

	f, ok := e.session.Step(e.CursorColumn, dir, cascade)
	if !ok {
		return
	}

	d, _ := e.session.Date()
	e.SetText(d.String())
	start, _ := engine.FieldSpan(d, f)
	e.CursorColumn = start
	e.Refresh()

	slog.Debug(config.MsgDateStepped,
		config.LogKeyComponent, config.CompEntry,
		config.LogKeyField, f.String(),
		config.LogKeyDir, dir.String(),
		config.LogKeyCascade, cascade,
		config.LogKeyValue, d.String())
	if e.OnStepped != nil {
		e.OnStepped(d, f)
	}
}
