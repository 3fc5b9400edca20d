package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-datefield/internal/config"
)

// TestApp_LoadReminderTrigger tests the conversion of preferences to an ISO-8601 alarm offset.
func TestApp_LoadReminderTrigger(t *testing.T) {
	a := test.NewApp()
	app := &DateFieldApp{
		App:         a,
		Preferences: a.Preferences(),
	}

	tests := []struct {
		name        string
		enabled     bool
		val         int
		unit        string
		direction   string
		wantTrigger string
	}{
		{
			name:        "Disabled",
			enabled:     false,
			wantTrigger: "",
		},
		{
			name:        "1 Day Before",
			enabled:     true,
			val:         1,
			unit:        config.UnitDays,
			direction:   config.DirBefore,
			wantTrigger: "-P1D",
		},
		{
			name:        "2 Hours After",
			enabled:     true,
			val:         2,
			unit:        config.UnitHours,
			direction:   config.DirAfter,
			wantTrigger: "PT2H",
		},
		{
			name:        "30 Minutes Before",
			enabled:     true,
			val:         30,
			unit:        config.UnitMinutes,
			direction:   config.DirBefore,
			wantTrigger: "-PT30M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Preferences.SetBool(config.PrefReminderEnabled, tt.enabled)
			app.Preferences.SetInt(config.PrefReminderValue, tt.val)
			app.Preferences.SetString(config.PrefReminderUnit, tt.unit)
			app.Preferences.SetString(config.PrefReminderDir, tt.direction)

			assert.Equal(t, tt.wantTrigger, app.loadReminderTrigger())
		})
	}
}

func TestApp_Validators(t *testing.T) {
	app := &DateFieldApp{}

	assert.NoError(t, app.validatePort("8080"))
	assert.Error(t, app.validatePort(""))
	assert.Error(t, app.validatePort("http"))
	assert.Error(t, app.validatePort("0"))
	assert.Error(t, app.validatePort("65536"))

	assert.NoError(t, app.validateReminderValue(""))
	assert.NoError(t, app.validateReminderValue("15"))
	assert.Error(t, app.validateReminderValue("-1"))
	assert.Error(t, app.validateReminderValue("soon"))
}

func TestApp_ChoiceMapping(t *testing.T) {
	app := &DateFieldApp{}

	sel := app.newChoiceSelect(reminderUnits, config.UnitMinutes)
	assert.Len(t, sel.Options, len(reminderUnits))
	assert.Equal(t, config.TKeyUnitMinutes, sel.Selected, "without a localizer labels are the keys")
	assert.Equal(t, config.UnitMinutes, app.choiceValue(reminderUnits, sel.Selected))

	sel = app.newChoiceSelect(sourceModes, "unknown-mode")
	assert.Equal(t, config.TKeyModeLocal, sel.Selected, "unknown values fall back to the first choice")

	assert.Equal(t, config.DirAfter, app.choiceValue(reminderDirections, config.TKeyDirAfter))
	assert.Equal(t, config.DirBefore, app.choiceValue(reminderDirections, "nope"))
}
