package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/tartampluch/go-datefield/internal/engine"
	"github.com/tartampluch/go-datefield/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// DateFieldApp encapsulates the UI state, preferences, and the date feed.
type DateFieldApp struct {
	App         fyne.App
	MainWindow  fyne.Window
	Window      fyne.Window // Settings window, nil when closed.
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.FeedServer
	Fetcher engine.ContactFetcher
	Clock   engine.Clock // Injected clock for testability

	Entry      *DateEntry
	StatusText *widget.Label
	HintText   *widget.Label

	Tray desktop.App
	Menu *fyne.Menu

	TrayOpenItem     *fyne.MenuItem
	TrayImportItem   *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	// Import State
	ImportedMut  sync.RWMutex
	Imported     []engine.ContactDate
	importWindow fyne.Window
}

// NewDateFieldApp constructs the application and wires dependencies.
func NewDateFieldApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher engine.ContactFetcher) *DateFieldApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &DateFieldApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		Imported:           make([]engine.ContactDate, 0),
	}
}

// Run launches the feed server, the tray and the editor window, then blocks
// in the Fyne event loop.
func (app *DateFieldApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.BuildMainWindow()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
		// With a tray, closing the editor only hides it.
		app.MainWindow.SetCloseIntercept(app.MainWindow.Hide)
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.RestoreLastValue()
	app.MainWindow.Show()
	app.App.Run()
}

// BuildMainWindow creates the editor window around a DateEntry.
func (app *DateFieldApp) BuildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinMain))
	app.MainWindow = w

	app.Entry = NewDateEntry(engine.NewParser(app.Clock))
	app.Entry.SetPlaceHolder(app.GetMsg(config.TKeyPlaceholder))
	app.Entry.OnCommitted = app.onCommitted
	app.Entry.OnRejected = app.onRejected
	app.Entry.OnStepped = app.onStepped

	app.HintText = widget.NewLabel(app.GetMsg(config.TKeyHintKeys))
	app.HintText.TextStyle = fyne.TextStyle{Italic: true}
	app.StatusText = widget.NewLabel(app.Localize(config.TKeyStatusIdle, nil, config.FallbackIdle))

	w.SetContent(container.NewPadded(container.NewVBox(app.Entry, app.HintText, app.StatusText)))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.Canvas().Focus(app.Entry)
}

// RestoreLastValue seeds the editor with the last committed date, if any.
func (app *DateFieldApp) RestoreLastValue() {
	last := app.Preferences.String(config.PrefLastValue)
	if last == "" || app.Entry == nil {
		return
	}

	d, err := engine.NewParser(app.Clock).Parse(last)
	if err != nil {
		slog.Warn(config.MsgDateRejected,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyInput, last,
			config.LogKeyError, err)
		return
	}

	app.Entry.SetDate(d)
	app.publish(d)
	slog.Info(config.MsgDateRestored,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyValue, d.String())
}

func (app *DateFieldApp) onCommitted(d engine.Date) {
	app.setStatus(app.Localize(config.TKeyStatusParsed, map[string]interface{}{"Date": d.String()}, d.String()))
	app.publish(d)
}

func (app *DateFieldApp) onRejected(_ string, _ error) {
	app.setStatus(app.Localize(config.TKeyStatusRejected, nil, config.FallbackRejected))
}

func (app *DateFieldApp) onStepped(d engine.Date, f engine.Field) {
	app.setStatus(app.Localize(config.TKeyStatusStepped, map[string]interface{}{"Field": f.String()}, f.String()))
	app.publish(d)
}

func (app *DateFieldApp) setStatus(text string) {
	if app.StatusText != nil {
		app.StatusText.SetText(text)
	}
}

// publish exports d and hands it to the feed server, then remembers it.
func (app *DateFieldApp) publish(d engine.Date) {
	exporter := &engine.Exporter{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}

	ics, err := exporter.Export(d, app.loadReminderTrigger())
	if err != nil {
		slog.Error(config.ErrPublish,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	if app.Server != nil {
		app.Server.Publish(ics, d.String())
	}
	app.Preferences.SetString(config.PrefLastValue, d.Numeric())
}

// setupTrayMenu constructs the system tray menu.
func (app *DateFieldApp) setupTrayMenu() {
	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen), func() {
		app.MainWindow.Show()
		app.MainWindow.RequestFocus()
	})

	app.TrayImportItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuImport), func() {
		go app.performImport()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayOpenItem,
		fyne.NewMenuItemSeparator(),
		app.TrayImportItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTexts updates localized labels after a language change.
func (app *DateFieldApp) RefreshTexts() {
	if app.MainWindow != nil {
		app.MainWindow.SetTitle(app.GetMsg(config.TKeyWinMain))
		app.Entry.SetPlaceHolder(app.GetMsg(config.TKeyPlaceholder))
		app.HintText.SetText(app.GetMsg(config.TKeyHintKeys))
	}
	if app.Menu == nil {
		return
	}
	app.TrayOpenItem.Label = app.GetMsg(config.TKeyMenuOpen)
	app.TrayImportItem.Label = app.GetMsg(config.TKeyMenuImport)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// performImport reads the configured contact source and opens the import window.
func (app *DateFieldApp) performImport() {
	slog.Info(config.MsgImportReq, config.LogKeyComponent, config.CompUI)
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifImport)))

	im := &engine.Importer{
		Clock:   app.Clock,
		Fetcher: app.Fetcher,
	}

	dates, err := im.Import(app.Ctx, app.loadImportConfig())
	if err != nil {
		slog.Error(config.MsgImportFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if !errors.Is(err, context.Canceled) {
			app.App.SendNotification(fyne.NewNotification(config.TitleImportError, app.GetMsg(config.TKeyNotifImportErr)))
		}
		return
	}

	app.ImportedMut.Lock()
	app.Imported = dates
	app.ImportedMut.Unlock()

	app.App.SendNotification(fyne.NewNotification(config.AppName,
		app.Localize(config.TKeyNotifImportOK, map[string]interface{}{"Count": len(dates)}, config.MsgImportSuccess)))

	fyne.Do(app.ShowImportWindow)
}

// loadImportConfig assembles the importer configuration from preferences and Keyring.
func (app *DateFieldApp) loadImportConfig() engine.ImportConfig {
	cfg := engine.ImportConfig{
		Mode:      app.Preferences.String(config.PrefSourceMode),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// loadReminderTrigger builds the ISO-8601 alarm offset, or "" when reminders are off.
func (app *DateFieldApp) loadReminderTrigger() string {
	if !app.Preferences.Bool(config.PrefReminderEnabled) {
		return ""
	}

	val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
	unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
	dir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)

	sign := config.ISOPeriodPrefix
	if dir == config.DirBefore {
		sign = config.ISONegativePrefix
	}

	switch unit {
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTime, val, config.ISOHour)
	case config.UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTime, val, config.ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, val, config.ISODay)
	}
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *DateFieldApp) buildSummaryFormatter() func(d engine.Date) string {
	return func(d engine.Date) string {
		return app.Localize(config.TKeyEvtSummary,
			map[string]interface{}{"Date": d.String()},
			fmt.Sprintf(config.FallbackSummary, d.String()))
	}
}
