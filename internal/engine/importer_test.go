package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/tartampluch/go-datefield/internal/engine"
)

const addressBook = `BEGIN:VCARD
VERSION:4.0
FN:John Doe
BDAY:1990-05-03
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jane Leap
BDAY:--02-29
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Happy Pair
ANNIVERSARY:20100612
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Broken Date
BDAY:sometime in spring
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Dates
END:VCARD
`

func writeAddressBook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImporter_Import_Local(t *testing.T) {
	im := &engine.Importer{Clock: fixedClock}
	cfg := engine.ImportConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: writeAddressBook(t, addressBook),
	}

	dates, err := im.Import(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, dates, 3)

	assert.Equal(t, "John Doe", dates[0].Name)
	assert.Equal(t, config.KindBirthday, dates[0].Kind)
	assert.Equal(t, engine.Date{Day: 3, Month: 4, Year: 1990}, dates[0].Date)
	assert.True(t, dates[0].YearKnown)

	// No year: placed in the clock's year, 29th of February clamped.
	assert.Equal(t, "Jane Leap", dates[1].Name)
	assert.Equal(t, engine.Date{Day: 28, Month: 1, Year: 2025}, dates[1].Date)
	assert.False(t, dates[1].YearKnown)

	assert.Equal(t, "Happy Pair", dates[2].Name)
	assert.Equal(t, config.KindAnniversary, dates[2].Kind)
	assert.Equal(t, engine.Date{Day: 12, Month: 5, Year: 2010}, dates[2].Date)

	for _, d := range dates {
		assert.NoError(t, d.Date.Validate())
		assert.NotEmpty(t, d.UID)
	}
}

func TestImporter_Import_StableUIDs(t *testing.T) {
	im := &engine.Importer{Clock: fixedClock}
	cfg := engine.ImportConfig{Mode: config.SourceModeLocal, LocalPath: writeAddressBook(t, addressBook)}

	first, err := im.Import(context.Background(), cfg)
	require.NoError(t, err)
	second, err := im.Import(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	seen := map[string]bool{}
	for i := range first {
		assert.Equal(t, first[i].UID, second[i].UID)
		assert.False(t, seen[first[i].UID], "UIDs must be unique")
		seen[first[i].UID] = true
	}
}

func TestImporter_Import_Web(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/contacts", "user", "pass").
		Return(io.NopCloser(strings.NewReader(addressBook)), nil)

	im := &engine.Importer{Clock: fixedClock, Fetcher: fetcher}
	cfg := engine.ImportConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  "https://dav.example.com/contacts",
		WebUser: "user",
		WebPass: "pass",
	}

	dates, err := im.Import(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, dates, 3)
	fetcher.AssertExpectations(t)
}

func TestImporter_Import_Errors(t *testing.T) {
	failing := new(MockFetcher)
	failing.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	tests := []struct {
		name    string
		fetcher engine.ContactFetcher
		cfg     engine.ImportConfig
		wantErr string
	}{
		{"LocalPathEmpty", nil, engine.ImportConfig{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"LocalFileMissing", nil, engine.ImportConfig{Mode: config.SourceModeLocal, LocalPath: filepath.Join(t.TempDir(), "nope.vcf")}, config.ErrVCardRead},
		{"WebURLEmpty", failing, engine.ImportConfig{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"FetcherMissing", nil, engine.ImportConfig{Mode: config.SourceModeWeb, WebURL: "https://x"}, config.ErrFetcherMissing},
		{"FetchFails", failing, engine.ImportConfig{Mode: config.SourceModeWeb, WebURL: "https://x"}, "connection refused"},
		{"UnknownMode", nil, engine.ImportConfig{Mode: "ftp"}, config.ErrModeUnsupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := &engine.Importer{Clock: fixedClock, Fetcher: tt.fetcher}

			dates, err := im.Import(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Nil(t, dates)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImporter_Import_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := &engine.Importer{Clock: fixedClock}
	cfg := engine.ImportConfig{Mode: config.SourceModeLocal, LocalPath: writeAddressBook(t, addressBook)}

	_, err := im.Import(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
