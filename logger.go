package gopherweb

import (
	"fmt"
	"log"
	"os"
)

const (
	logPrefixInfo  = ":: I :: "
	logPrefixError = ":: E :: "
	logPrefixFatal = ":: F :: "
)

// Logger is the small leveled interface the server logs through. The
// prefix argument carries per-connection context (client address and
// connection id) on the access log and is empty on the system log.
type Logger interface {
	Info(prefix, format string, args ...interface{})
	Error(prefix, format string, args ...interface{})
	Fatal(prefix, format string, args ...interface{})
}

// NullLogger drops everything. Fatal still exits.
type NullLogger struct{}

func (l *NullLogger) Info(prefix, format string, args ...interface{})  {}
func (l *NullLogger) Error(prefix, format string, args ...interface{}) {}
func (l *NullLogger) Fatal(prefix, format string, args ...interface{}) {
	os.Exit(1)
}

// StdLogger wraps a stdlib log.Logger.
type StdLogger struct {
	Logger *log.Logger
}

func (l *StdLogger) Info(prefix, format string, args ...interface{}) {
	l.Logger.Printf(logPrefixInfo+prefix+format, args...)
}

func (l *StdLogger) Error(prefix, format string, args ...interface{}) {
	l.Logger.Printf(logPrefixError+prefix+format, args...)
}

func (l *StdLogger) Fatal(prefix, format string, args ...interface{}) {
	l.Logger.Fatalf(logPrefixFatal+prefix+format, args...)
}

// NewStderrLogger returns a logger writing to stderr, with or without
// timestamps.
func NewStderrLogger(timestamps bool) Logger {
	flags := 0
	if timestamps {
		flags = log.LstdFlags
	}
	return &StdLogger{log.New(os.Stderr, "", flags)}
}

// NewFileLogger returns a logger appending to path.
func NewFileLogger(path string, timestamps bool) (Logger, error) {
	writer, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	flags := 0
	if timestamps {
		flags = log.LstdFlags
	}
	return &StdLogger{log.New(writer, "", flags)}, nil
}

// SetupLoggers builds the system and access logger pair from log file
// paths, where an empty path means stderr and the literal value
// "disable" turns that log off.
func SetupLoggers(systemPath, accessPath string, timestamps bool) (Logger, Logger, error) {
	setup := func(path string) (Logger, error) {
		switch path {
		case "disable":
			return &NullLogger{}, nil
		case "":
			return NewStderrLogger(timestamps), nil
		default:
			return NewFileLogger(path, timestamps)
		}
	}

	sysLog, err := setup(systemPath)
	if err != nil {
		return nil, nil, err
	}
	accLog, err := setup(accessPath)
	if err != nil {
		return nil, nil, err
	}
	return sysLog, accLog, nil
}
