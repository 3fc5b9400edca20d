package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-datefield/internal/config"
)

// document is one rendered representation of the committed date.
type document struct {
	data        []byte
	etag        string
	contentType string
}

// feed is the immutable snapshot swapped in on every Publish.
type feed struct {
	calendar     document
	text         document
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer publishes the last committed date on localhost, as an
// iCalendar subscription and as plain text.
type FeedServer struct {
	// Read on every request, replaced only when the user commits a date.
	current atomic.Pointer[feed]
	Port    string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port: port,
	}
}

// Handler returns the routing table of the feed.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.serve(func(f *feed) document { return f.calendar }))
	mux.HandleFunc(config.RouteICS, s.serve(func(f *feed) document { return f.calendar }))
	mux.HandleFunc(config.RouteText, s.serve(func(f *feed) document { return f.text }))
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish atomically replaces both documents. Readers see either the previous
// pair or the new one, never a mix.
func (s *FeedServer) Publish(ics []byte, text string) {
	next := &feed{
		calendar:     newDocument(ics, config.MimeTextCalendar),
		text:         newDocument([]byte(text), config.MimeTextPlain),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	s.current.Store(next)

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(ics),
		config.LogKeyETag, next.calendar.etag,
	)
}

func newDocument(data []byte, contentType string) document {
	hash := sha256.Sum256(data)
	return document{
		data:        data,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		contentType: contentType,
	}
}

// serve builds a handler for one document of the feed, with conditional GET support.
func (s *FeedServer) serve(pick func(*feed) document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}

		current := s.current.Load()
		if current == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}
		doc := pick(current)

		w.Header().Set(config.HeaderContentType, doc.contentType)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, doc.etag)
		w.Header().Set(config.HeaderLastModified, current.lastModified)

		if notModified(r, doc.etag, current.lastModified) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(doc.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}

func notModified(r *http.Request, etag, lastModified string) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, lastModified)
	if err != nil {
		return false
	}
	// Content not newer than the client's copy.
	return !serverTime.After(clientTime)
}
