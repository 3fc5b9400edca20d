package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-datefield/internal/config"
)

// ImportConfig selects where contacts are read from.
type ImportConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Importer reads birthday and anniversary dates out of vCard contacts.
type Importer struct {
	Clock   Clock          // Year source for dates stored without one.
	Fetcher ContactFetcher // Remote source; unused in local mode.
}

// Import opens the configured source and returns every readable date.
func (im *Importer) Import(ctx context.Context, cfg ImportConfig) ([]ContactDate, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.openSource(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardRead, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dates, err := im.readContacts(ctx, reader)
	if err == nil {
		log.Debug(config.MsgImportSuccess, config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return dates, err
}

func (im *Importer) openSource(ctx context.Context, cfg ImportConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// readContacts decodes the vCard stream card by card. Malformed cards and
// unreadable dates are skipped so one bad entry does not sink the import.
func (im *Importer) readContacts(ctx context.Context, r io.Reader) ([]ContactDate, error) {
	decoder := vcard.NewDecoder(r)
	clock := im.Clock
	if clock == nil {
		clock = RealClock{}
	}
	currentYear := clock.Now().Year()

	var processed int
	var dates []ContactDate

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			continue
		}
		processed++

		name := contactName(card)
		for _, kind := range []struct{ field, kind string }{
			{config.VCardBDAY, config.KindBirthday},
			{config.VCardAnniversary, config.KindAnniversary},
		} {
			prop := card.Get(kind.field)
			if prop == nil || prop.Value == "" {
				continue
			}

			t, yearKnown, err := parseVCardDate(prop.Value)
			if err != nil {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompImporter,
					config.LogKeyValue, prop.Value)
				continue
			}

			d := FromTime(t)
			if !yearKnown {
				d.Year = currentYear
			}

			dates = append(dates, ContactDate{
				UID:       contactUID(name, kind.kind, prop.Value),
				Name:      name,
				Kind:      kind.kind,
				Date:      d,
				YearKnown: yearKnown,
			})
		}
	}

	slog.Info(config.MsgImportSuccess,
		config.LogKeyComponent, config.CompImporter,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, processed),
			slog.Int(config.LogKeyFound, len(dates)),
		),
	)
	return dates, nil
}

// contactName prefers FN (Formatted) over N (Structured).
func contactName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

func contactUID(name, kind, value string) string {
	input := fmt.Sprintf(config.FormatHashInput, name, kind+value, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// parseVCardDate handles the vCard date layouts, with and without a year.
func parseVCardDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// --MM-DD: read in a leap year so --02-29 survives until FromTime clamps it.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
