package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-DateField/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go DateField"
	AppID             = "com.github.tartampluch.go-datefield"
	KeyringService    = "com.github.tartampluch.go-datefield"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagTUI          = "tui"
	FlagParse        = "parse"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescTUI      = "Run the terminal editor instead of the desktop window"
	FlagDescParse    = "Parse the given text, print its canonical form and exit"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
	MsgParseOutput   = "%s\n"
	MsgParseRejected = "rejected: %v\n"
)

// -----------------------------------------------------------------------------
// Terminal Editor
// -----------------------------------------------------------------------------

const (
	TUIPrompt          = "> "
	TUIRulerMark       = "^"
	TUIInputWidth      = 32
	TUITitle           = "Go DateField"
	TUIHelp            = "enter: confirm  ↑/↓: change field  ctrl+↑/↓: carry over  esc: quit"
	TUIStatusCommitted = "Committed %s"
	TUIStatusStepped   = "Changed %s"
	TUIColorAccent     = "205"
	TUIColorError      = "9"
	TUIColorMuted      = "241"
)

// -----------------------------------------------------------------------------
// Calendar Tables
// -----------------------------------------------------------------------------

// MonthNames is the canonical month table, in calendar order.
// Rendering uses the full name; parsing accepts case-insensitive prefixes.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// DaysInMonth is the static non-leap day count per zero-based month.
var DaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

const (
	MinYear  = 0
	MaxYear  = 9999
	MinMonth = 0
	MaxMonth = 11
	MinDay   = 1
	MaxDay   = 31
	MaxHours = 23
	MaxMins  = 59
	MaxSecs  = 59

	// TwoDigitYearBase is added to years typed with fewer than ThreeDigitYear digits.
	TwoDigitYearBase = 2000
	ThreeDigitYear   = 3

	// MinMonthNameLen is the shortest accepted alphabetic month token.
	MinMonthNameLen = 3

	// ParseMatchTimeout bounds regex backtracking on hostile input.
	ParseMatchTimeout = 250 * time.Millisecond

	// Canonical rendering separators.
	SepDate     = "/"
	SepDateTime = " "
	SepTime     = ":"
	PadWidth    = 2

	// FormatNumeric renders every field as digits with a four-digit year,
	// a layout the input grammar reads back unchanged.
	FormatNumeric = "%02d/%02d/%04d %02d:%02d:%02d"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600
	MainWindowWidth     = 360
	MainWindowHeight    = 140

	// Preference Keys
	PrefCardDAVURL      = "carddav_url"
	PrefUsername        = "username"
	PrefLanguage        = "language"
	PrefServerPort      = "server_port"
	PrefSourceMode      = "source_mode"
	PrefLocalPath       = "local_path"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefReminderDir     = "reminder_direction"
	PrefLastValue       = "last_value"
	PrefLastRun         = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Import Window Constants
// -----------------------------------------------------------------------------

const (
	ImportWinWidth  = 560
	ImportWinHeight = 400

	// Table Column IDs
	ColIDName = 0
	ColIDKind = 1
	ColIDDate = 2
	ColCount  = 3

	// Table Layout
	ColWidthName = 220
	ColWidthKind = 110
	ColWidthDate = 210

	TablePlaceholder = "Cell Content"
	LogMsgOpenWin    = "Opening import window"
	LogMsgSorted     = "Imported dates sorted"
	LogMsgSeeded     = "Editor seeded from imported date"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinMain         = "win_main_title"
	TKeyWinSettings     = "win_settings_title"
	TKeyWinImport       = "win_import_title"
	TKeyMenuOpen        = "menu_open"
	TKeyMenuImport      = "menu_import"
	TKeyMenuSettings    = "menu_settings"
	TKeyPlaceholder     = "entry_placeholder"
	TKeyHintKeys        = "hint_keys"
	TKeyStatusIdle      = "status_idle"
	TKeyStatusParsed    = "status_parsed"
	TKeyStatusRejected  = "status_rejected"
	TKeyStatusStepped   = "status_stepped" // Requires Field
	TKeyNotifImport     = "notif_import_start"
	TKeyNotifImportOK   = "notif_import_success" // Requires Count
	TKeyNotifImportErr  = "notif_err_import"
	TKeyModeCardDAV     = "mode_carddav"
	TKeyModeLocal       = "mode_local"
	TKeyLblLanguage     = "lbl_language"
	TKeyHelpLanguage    = "help_language"
	TKeyLblPort         = "lbl_server_port"
	TKeyHelpPort        = "help_port"
	TKeyLblGeneral      = "lbl_general"
	TKeyLblEnableRem    = "lbl_enable_reminders"
	TKeyUnitDays        = "unit_days"
	TKeyUnitHours       = "unit_hours"
	TKeyUnitMinutes     = "unit_minutes"
	TKeyDirBefore       = "dir_before"
	TKeyDirAfter        = "dir_after"
	TKeyLblNotif        = "lbl_notifications"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyLblFooter       = "lbl_footer"
	TKeyBtnBrowse       = "btn_browse"
	TKeyLblURL          = "lbl_url"
	TKeyHelpURL         = "help_carddav_url"
	TKeyLblUser         = "lbl_user"
	TKeyLblPass         = "lbl_pass"
	TKeyLblSource       = "lbl_source"
	TKeyEvtSummary      = "event_summary" // Requires Date
	TKeyColName         = "col_name"
	TKeyColKind         = "col_kind"
	TKeyColDate         = "col_date"
	TKeyKindBirthday    = "kind_birthday"
	TKeyKindAnniversary = "kind_anniversary"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrRemNum    = "err_reminder_number"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18081"
	DefaultLanguage      = "en"
	DefaultLeapYear      = 2000 // Leap year used to read --MM-DD vCard dates
	DefaultReminderValue = 1
	UIDSalt              = "go-datefield-v1-" // Salt for deterministic UID generation

	KindBirthday    = "birthday"
	KindAnniversary = "anniversary"
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISODay            = "D"
	ISOTime           = "T"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go DateField//Engine//EN"
	ICalCalName   = "DateField"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "godatefield"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY        = "BDAY"
	VCardAnniversary = "ANNIVERSARY"
	VCardFN          = "FN"
	VCardN           = "N"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY/ANNIVERSARY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteICS            = "/date.ics"
	RouteText           = "/date.txt"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeTextHTML        = "text/html"
	AcceptVCard         = "text/vcard, text/x-vcard;q=0.9, */*;q=0.5"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrMalformedInput   = "malformed date input"
	ErrOutOfRange       = "date field out of range"
	ErrUnknownMonth     = "unknown month name"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetchRequest     = "failed to create contacts request"
	ErrFetchNetwork     = "network error during contacts fetch"
	ErrFetchStatus      = "contact source returned unexpected status"
	ErrFetchHTML        = "contact source returned an HTML page instead of vCards"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardRead        = "failed to read vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrPublish          = "failed to publish date feed"
	ErrTUI              = "terminal editor failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "No date committed yet, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary  = "Date: %s"
	FallbackName     = "Unknown"
	FallbackRejected = "Could not read this date"
	FallbackIdle     = "Type a date, then press Enter"

	TitleStartupError = "Startup Error"
	TitleImportError  = "Import Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgImportStarted  = "Import started"
	MsgImportSuccess  = "Import successful"
	MsgImportFailed   = "Import failed. Check logs."
	MsgImportReq      = "Import requested"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgFeedUpdated    = "Date feed updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgDateCommitted  = "Date committed"
	MsgDateRejected   = "Date input rejected"
	MsgDateStepped    = "Date field stepped"
	MsgDateRestored   = "Restored last committed date"
	MsgExportFinished = "Date exported"
	MsgFetchRequest   = "Requesting contacts"
	MsgFetchStatus    = "Contact source returned error status"
	MsgFetchStarted   = "Contacts downloading"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyAuth      = "auth"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "dates_found"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyInput     = "input"
	LogKeyField     = "field"
	LogKeyCascade   = "cascade"
	LogKeyDir       = "direction"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyKind      = "kind"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompUIImport = "ui_import"
	CompEntry    = "date_entry"
	CompImporter = "importer"
	CompExporter = "exporter"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompTUI      = "tui"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
