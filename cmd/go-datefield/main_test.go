package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-datefield/internal/config"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

func TestParseOnce(t *testing.T) {
	tests := []struct {
		input    string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"05/03/2024 09:30", config.ExitCodeSuccess, "05/March/2024 09:30:00\n", ""},
		{"1 jan", config.ExitCodeSuccess, "01/January/2025 00:00:00\n", ""},
		{"32/01/2024", config.ExitCodeError, "", "rejected: "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := parseOnce(tt.input, fixedClock{}, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOut, stdout.String())
			assert.Contains(t, stderr.String(), tt.wantErr)
		})
	}
}

func TestRunMain_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runMain([]string{"-" + config.FlagVersion}, &stdout, &stderr)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Contains(t, stdout.String(), config.AppName)
	assert.Contains(t, stdout.String(), config.Version)
}

func TestRunMain_Parse(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runMain([]string{"-" + config.FlagParse, "31.02.2024"}, &stdout, &stderr)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "03/March/2024 00:00:00\n", stdout.String())
}

func TestRunMain_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runMain([]string{"-nope"}, &stdout, &stderr)

	assert.Equal(t, config.ExitCodeError, code)
	assert.NotEmpty(t, stderr.String())
}
