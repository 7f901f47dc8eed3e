package config_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/httpsessions/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{
			name:    "Valid level: debug",
			level:   "debug",
			wantErr: false,
		},
		{
			name:    "Valid level: DEBUG (case insensitive)",
			level:   "DEBUG",
			wantErr: false,
		},
		{
			name:    "Valid level: info",
			level:   "info",
			wantErr: false,
		},
		{
			name:    "Valid level: WARN",
			level:   "WARN",
			wantErr: false,
		},
		{
			name:    "Valid level: error",
			level:   "error",
			wantErr: false,
		},
		{
			name:    "Invalid level: invalid",
			level:   "invalid",
			wantErr: true,
		},
		{
			name:    "Invalid level: empty string",
			level:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &config.Logger{
				Level:  tt.level,
				Format: "text",
				Output: &buf,
			}

			result, err := logger.Configure()
			if (err != nil) != tt.wantErr {
				t.Errorf("Configure() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && result == nil {
				t.Error("Configure() returned nil logger for valid input")
			}
		})
	}
}

func TestLogger_Configure_Format(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "console", format: "console"},
		{name: "text", format: "text"},
		{name: "JSON upper case", format: "JSON"},
		{name: "unknown", format: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &config.Logger{
				Level:  "info",
				Format: tt.format,
				Output: &buf,
			}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)

			result.Info("test log message")
			gt.S(t, buf.String()).Contains("test log message")
		})
	}
}

func TestLogger_Configure_LevelBehavior(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "warn", Format: "text", Output: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Debug("debug message")
	result.Info("info message")
	result.Warn("warn message")

	gt.False(t, strings.Contains(buf.String(), "debug message"))
	gt.False(t, strings.Contains(buf.String(), "info message"))
	gt.True(t, strings.Contains(buf.String(), "warn message"))
}

func TestLogger_Configure_MasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "info", Format: "json", Output: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err)

	storage := config.Storage{
		ConnectionString: "AccountName=acct;AccountKey=super-secret-key",
		Provider:         "azure",
		Container:        "samples",
	}
	result.Info("storage configured", slog.Any("storage", storage))

	gt.False(t, strings.Contains(buf.String(), "super-secret-key"))
	gt.True(t, strings.Contains(buf.String(), "samples"))
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()

	if len(flags) != 2 {
		t.Errorf("Flags() returned %d flags, want 2", len(flags))
	}

	// Verify flag names
	flagNames := make(map[string]bool)
	for _, flag := range flags {
		switch f := flag.(type) {
		case interface{ Names() []string }:
			names := f.Names()
			if len(names) > 0 {
				flagNames[names[0]] = true
			}
		}
	}

	if !flagNames["log-level"] {
		t.Error("Missing log-level flag")
	}
	if !flagNames["log-format"] {
		t.Error("Missing log-format flag")
	}
}
