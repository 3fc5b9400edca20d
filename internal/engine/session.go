package engine

// Session holds the value a front-end is editing: the last committed Date
// and whether it is still in sync with the text on screen. Typing drops the
// parsed state, a commit restores it, and steps only apply while it holds.
//
// A Session is not safe for concurrent use; front-ends drive it from their
// event loop.
type Session struct {
	parser *Parser
	date   Date
	parsed bool
}

// NewSession returns an empty Session reading input with p.
func NewSession(p *Parser) *Session {
	if p == nil {
		p = NewParser(nil)
	}
	return &Session{parser: p}
}

// Commit parses text. On success the result becomes the current Date; on
// rejection the Session is left exactly as it was.
func (s *Session) Commit(text string) (Date, error) {
	d, err := s.parser.Parse(text)
	if err != nil {
		return Date{}, err
	}
	s.date, s.parsed = d, true
	return d, nil
}

// Seed replaces the current Date with an already structured value.
func (s *Session) Seed(d Date) {
	s.date, s.parsed = Clamp(d), true
}

// Edit marks the on-screen text as diverged from the current Date.
func (s *Session) Edit() {
	s.parsed = false
}

// Date returns the current Date and whether it matches the rendered text.
func (s *Session) Date() (Date, bool) {
	return s.date, s.parsed
}

// Step applies a command to the field under the caret. It reports the
// stepped field, or false when nothing is parsed or the caret is past the end.
func (s *Session) Step(caret int, dir Direction, cascade bool) (Field, bool) {
	if !s.parsed {
		return Day, false
	}
	f, ok := LocateField(s.date, caret)
	if !ok {
		return Day, false
	}
	s.date = Apply(s.date, Command{Field: f, Direction: dir, Cascade: cascade})
	return f, true
}
