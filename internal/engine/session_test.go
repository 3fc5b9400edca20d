package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datefield/internal/engine"
)

func TestSession_CommitAndStep(t *testing.T) {
	s := engine.NewSession(engine.NewParser(fixedClock))

	_, ok := s.Step(0, engine.Up, false)
	assert.False(t, ok, "nothing to step before the first commit")

	d, err := s.Commit("5 mar 2024 9:30")
	require.NoError(t, err)
	assert.Equal(t, "05/March/2024 09:30:00", d.String())

	f, ok := s.Step(4, engine.Up, false)
	require.True(t, ok)
	assert.Equal(t, engine.Month, f)

	got, parsed := s.Date()
	assert.True(t, parsed)
	assert.Equal(t, "05/April/2024 09:30:00", got.String())
}

func TestSession_RejectionKeepsState(t *testing.T) {
	s := engine.NewSession(engine.NewParser(fixedClock))
	_, err := s.Commit("31/12/2024")
	require.NoError(t, err)

	_, err = s.Commit("32/12/2024")
	require.Error(t, err)

	got, parsed := s.Date()
	assert.True(t, parsed)
	assert.Equal(t, engine.Date{Day: 31, Month: 11, Year: 2024}, got)
}

func TestSession_EditBlocksSteps(t *testing.T) {
	s := engine.NewSession(nil)
	s.Seed(engine.Date{Day: 31, Month: 1, Year: 2024})

	got, parsed := s.Date()
	require.True(t, parsed)
	assert.Equal(t, 28, got.Day, "seeded values are clamped")

	s.Edit()
	_, ok := s.Step(0, engine.Up, true)
	assert.False(t, ok)

	_, ok = s.Step(100, engine.Up, true)
	assert.False(t, ok)
}

func TestSession_StepPastEnd(t *testing.T) {
	s := engine.NewSession(engine.NewParser(fixedClock))
	s.Seed(sample)

	_, ok := s.Step(len(sample.String())+1, engine.Down, false)
	assert.False(t, ok)

	got, _ := s.Date()
	assert.Equal(t, sample, got)
}
