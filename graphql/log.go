/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package graphql

import "github.com/sirupsen/logrus"

// Logger receives diagnostic events from query compilation and execution: a panicking resolver, a
// resolver returning a value of the wrong shape, an abstract type failing to resolve. None of these
// stop the response from being produced (they're reported as field errors); the Logger exists so an
// operator can still see them.
type Logger interface {
	WithFields(fields LogFields) Logger
	Error(args ...interface{})
	Warn(args ...interface{})
}

// LogFields carries structured context (operation name, field path, ...) alongside a log entry.
type LogFields map[string]interface{}

// logrusLogger adapts *logrus.Entry to Logger.
type logrusLogger struct {
	entry *logrus.Entry
}

// WithFields implements Logger.
func (l logrusLogger) WithFields(fields LogFields) Logger {
	return logrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// Error implements Logger.
func (l logrusLogger) Error(args ...interface{}) {
	l.entry.Error(args...)
}

// Warn implements Logger.
func (l logrusLogger) Warn(args ...interface{}) {
	l.entry.Warn(args...)
}

// DefaultLogger returns a Logger backed by a standalone logrus.Logger writing to stderr.
func DefaultLogger() Logger {
	return logrusLogger{entry: logrus.NewEntry(logrus.New())}
}
