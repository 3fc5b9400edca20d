package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/tartampluch/go-datefield/internal/engine"
	"github.com/tartampluch/go-datefield/internal/server"
	"github.com/tartampluch/go-datefield/internal/tui"
	"github.com/tartampluch/go-datefield/internal/ui"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain parses flags, sets up logging and dispatches to the selected mode.
func runMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := fs.Bool(config.FlagDebug, false, config.FlagDescDebug)
	terminal := fs.Bool(config.FlagTUI, false, config.FlagDescTUI)
	parseText := fs.String(config.FlagParse, "", config.FlagDescParse)
	if err := fs.Parse(args); err != nil {
		return config.ExitCodeError
	}

	if *showVersion {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	if *parseText != "" {
		return parseOnce(*parseText, engine.RealClock{}, stdout, stderr)
	}

	// The terminal editor owns stdout; logs go to the file only.
	logCloser := setupLogging(*debugMode, !*terminal)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	var err error
	if *terminal {
		err = runTerminal(ctx, stdout)
	} else {
		err = run(ctx)
	}
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// parseOnce prints the canonical rendering of text, or the rejection reason.
func parseOnce(text string, clock engine.Clock, stdout, stderr io.Writer) int {
	d, err := engine.NewParser(clock).Parse(text)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, config.MsgParseRejected, err)
		return config.ExitCodeError
	}
	_, _ = fmt.Fprintf(stdout, config.MsgParseOutput, d.String())
	return config.ExitCodeSuccess
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context) error {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)
	fetcher := engine.NewHTTPFetcher()

	gui := ui.NewDateFieldApp(a, ctx, srv, fetcher)

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
	return nil
}

// runTerminal runs the bubbletea editor and prints the final value on exit.
func runTerminal(ctx context.Context, stdout io.Writer) error {
	d, parsed, err := tui.Run(ctx, engine.RealClock{}, func(d engine.Date) {
		slog.Info(config.MsgDateCommitted,
			config.LogKeyComponent, config.CompTUI,
			config.LogKeyValue, d.String())
	})
	if err != nil {
		return err
	}
	if parsed {
		_, _ = fmt.Fprintf(stdout, config.MsgParseOutput, d.String())
	}
	return nil
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger: JSON to the log file in
// the user cache directory, and to stdout unless the terminal editor runs.
func setupLogging(debugMode, toStdout bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if toStdout {
		writers = append(writers, os.Stdout)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			_, _ = fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
