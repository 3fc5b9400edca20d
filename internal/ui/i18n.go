package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-datefield/internal/config"
	"golang.org/x/text/language"
)

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n loads every embedded message file and selects the preferred language.
func (app *DateFieldApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		lang, ok := localeCode(name)
		if !ok {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(localeDir, name)); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, lang)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
		)
	}

	app.SupportedLanguages = detected
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// localeCode extracts "fr" from "active.fr.json".
func localeCode(name string) (string, bool) {
	if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
		return "", false
	}
	code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
	if code == "" {
		slog.Warn(config.MsgLocaleBadName,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
		return "", false
	}
	return code, true
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *DateFieldApp) UpdateLocalizer() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates a key, returning the key itself when it is missing.
func (app *DateFieldApp) GetMsg(key string) string {
	return app.Localize(key, nil, key)
}

// Localize translates key with template data, or returns fallback.
func (app *DateFieldApp) Localize(key string, data map[string]interface{}, fallback string) string {
	if app.Localizer == nil {
		return fallback
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}
