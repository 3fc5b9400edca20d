package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datefield/internal/config"
)

var translationKeys = []string{
	config.TKeyWinMain,
	config.TKeyWinSettings,
	config.TKeyWinImport,
	config.TKeyMenuOpen,
	config.TKeyMenuImport,
	config.TKeyMenuSettings,
	config.TKeyPlaceholder,
	config.TKeyHintKeys,
	config.TKeyStatusIdle,
	config.TKeyStatusParsed,
	config.TKeyStatusRejected,
	config.TKeyStatusStepped,
	config.TKeyNotifImport,
	config.TKeyNotifImportOK,
	config.TKeyNotifImportErr,
	config.TKeyModeCardDAV,
	config.TKeyModeLocal,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblGeneral,
	config.TKeyLblEnableRem,
	config.TKeyUnitDays,
	config.TKeyUnitHours,
	config.TKeyUnitMinutes,
	config.TKeyDirBefore,
	config.TKeyDirAfter,
	config.TKeyLblNotif,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblFooter,
	config.TKeyBtnBrowse,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblSource,
	config.TKeyEvtSummary,
	config.TKeyColName,
	config.TKeyColKind,
	config.TKeyColDate,
	config.TKeyKindBirthday,
	config.TKeyKindAnniversary,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyErrRemNum,
}

func loadLocale(t *testing.T, lang string) map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
	require.NoError(t, err, "Must load active.%s.json", lang)

	var messages map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &messages), "JSON must be valid")
	return messages
}

// TestI18nIntegrity ensures every translation key in config.go exists in
// every locale, and that no locale carries keys the code never asks for.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			messages := loadLocale(t, lang)

			for key := range defined {
				_, exists := messages[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}
			for key := range messages {
				if strings.HasPrefix(key, "_") {
					continue
				}
				assert.Truef(t, defined[key], "Key '%s' in active.%s.json is not used", key, lang)
			}
		})
	}
}

// TestI18nTemplates checks that parameterized messages keep their placeholders.
func TestI18nTemplates(t *testing.T) {
	placeholders := map[string]string{
		config.TKeyStatusParsed:  "{{.Date}}",
		config.TKeyStatusStepped: "{{.Field}}",
		config.TKeyNotifImportOK: "{{.Count}}",
		config.TKeyEvtSummary:    "{{.Date}}",
		config.TKeyLblFooter:     "%s",
	}

	for _, lang := range config.SupportedLanguages {
		messages := loadLocale(t, lang)
		for key, want := range placeholders {
			assert.Containsf(t, messages[key], want, "%s in %s", key, lang)
		}
	}
}
