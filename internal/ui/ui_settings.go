package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryPort     *widget.Entry
	checkReminder *widget.Check
	entryRemValue *widget.Entry
	selectRemUnit *widget.Select
	selectRemDir  *widget.Select
}

// choice pairs a stored preference value with the translation key shown for it.
// The first entry of a list is the default.
type choice struct {
	value string
	tkey  string
}

var sourceModes = []choice{
	{config.SourceModeLocal, config.TKeyModeLocal},
	{config.SourceModeWeb, config.TKeyModeCardDAV},
}

var reminderUnits = []choice{
	{config.UnitDays, config.TKeyUnitDays},
	{config.UnitHours, config.TKeyUnitHours},
	{config.UnitMinutes, config.TKeyUnitMinutes},
}

var reminderDirections = []choice{
	{config.DirBefore, config.TKeyDirBefore},
	{config.DirAfter, config.TKeyDirAfter},
}

// newChoiceSelect builds a Select over the localized labels of choices with
// the label of current selected.
func (app *DateFieldApp) newChoiceSelect(choices []choice, current string) *widget.Select {
	labels := make([]string, len(choices))
	selected := app.GetMsg(choices[0].tkey)
	for i, c := range choices {
		labels[i] = app.GetMsg(c.tkey)
		if c.value == current {
			selected = labels[i]
		}
	}
	sel := widget.NewSelect(labels, nil)
	sel.SetSelected(selected)
	return sel
}

// choiceValue maps a localized label back to its stored value.
func (app *DateFieldApp) choiceValue(choices []choice, label string) string {
	for _, c := range choices {
		if app.GetMsg(c.tkey) == label {
			return c.value
		}
	}
	return choices[0].value
}

// ShowSettingsWindow displays the configuration dialog.
// Only one settings window exists at a time.
func (app *DateFieldApp) ShowSettingsWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.Window = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	notifCard := app.buildNotifCard(sw, onLayoutChange)

	saveAction := func() {
		for _, entry := range []*widget.Entry{sw.entryPort, sw.entryRemValue} {
			if err := entry.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		sourceCard,
		notifCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the form controls, pre-filled from preferences.
func (app *DateFieldApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = app.newChoiceSelect(sourceModes, app.Preferences.String(config.PrefSourceMode))

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.SetPlaceHolder(config.PlaceholderURL)

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.entryPort = widget.NewEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.checkReminder = widget.NewCheck(app.GetMsg(config.TKeyLblEnableRem), nil)
	sw.checkReminder.Checked = app.Preferences.Bool(config.PrefReminderEnabled)

	sw.entryRemValue = widget.NewEntry()
	sw.entryRemValue.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)))
	sw.entryRemValue.Validator = app.validateReminderValue

	sw.selectRemUnit = app.newChoiceSelect(reminderUnits,
		app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays))
	sw.selectRemDir = app.newChoiceSelect(reminderDirections,
		app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore))

	return sw
}

// validatePort accepts a TCP port number in [MinPort, MaxPort].
func (app *DateFieldApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// validateReminderValue accepts an empty value (reminders off) or a positive count.
func (app *DateFieldApp) validateReminderValue(s string) error {
	if s == "" {
		return nil
	}
	if v, err := strconv.Atoi(s); err != nil || v < 0 {
		return errors.New(app.GetMsg(config.TKeyErrRemNum))
	}
	return nil
}

// buildSourceCard constructs the contact source selection used by imports.
func (app *DateFieldApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyVisibility := func(label string) {
		if app.choiceValue(sourceModes, label) == config.SourceModeWeb {
			webForm.Show()
			localForm.Hide()
		} else {
			webForm.Hide()
			localForm.Show()
		}
	}
	sw.modeSelect.OnChanged = func(label string) {
		applyVisibility(label)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	applyVisibility(sw.modeSelect.Selected)

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// buildNotifCard constructs the reminder controls for the exported event.
func (app *DateFieldApp) buildNotifCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	controls := container.NewHBox(sw.selectRemUnit, sw.selectRemDir)
	row := container.NewBorder(nil, nil, nil, controls, sw.entryRemValue)

	sw.checkReminder.OnChanged = func(b bool) {
		if b {
			row.Show()
		} else {
			row.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if !sw.checkReminder.Checked {
		row.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblNotif), "", container.NewVBox(sw.checkReminder, row))
}

// saveSettings persists the form and republishes the current date so the
// feed picks up a new reminder or language at once.
func (app *DateFieldApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	app.Preferences.SetString(config.PrefSourceMode, app.choiceValue(sourceModes, sw.modeSelect.Selected))
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// An empty value switches reminders off whatever the checkbox says.
	remValueText := sw.entryRemValue.Text
	if remValueText == "" {
		app.Preferences.SetBool(config.PrefReminderEnabled, false)
	} else {
		app.Preferences.SetBool(config.PrefReminderEnabled, sw.checkReminder.Checked)
		if v, err := strconv.Atoi(remValueText); err == nil {
			app.Preferences.SetInt(config.PrefReminderValue, v)
		}
	}

	app.Preferences.SetString(config.PrefReminderUnit, app.choiceValue(reminderUnits, sw.selectRemUnit.Selected))
	app.Preferences.SetString(config.PrefReminderDir, app.choiceValue(reminderDirections, sw.selectRemDir.Selected))

	app.UpdateLocalizer()
	app.RefreshTexts()

	if app.Entry != nil {
		if d, parsed := app.Entry.Date(); parsed {
			app.publish(d)
		}
	}
}
