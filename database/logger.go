/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

var (
	globalLogger   Logger
	globalLoggerMu sync.RWMutex
)

// Logger is the logging contract used throughout the database package.
// Fields are alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// InitLogger installs a custom logger. A nil logger is ignored; the first
// installed logger wins.
func InitLogger(log Logger) {
	if log == nil {
		return
	}
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		globalLogger = log
	}
}

// GetLogger returns the package logger, installing the zerolog-backed default
// on first use.
func GetLogger() Logger {
	globalLoggerMu.RLock()
	l := globalLogger
	globalLoggerMu.RUnlock()
	if l != nil {
		return l
	}

	dl := &DefaultLogger{logger: zlog.With().Str("component", "database").Logger()}
	globalLoggerMu.Lock()
	if globalLogger == nil {
		globalLogger = dl
	}
	l = globalLogger
	globalLoggerMu.Unlock()
	return l
}

// DefaultLogger adapts zerolog to the package Logger interface.
type DefaultLogger struct {
	logger zerolog.Logger
}

func (l *DefaultLogger) Debug(msg string, fields ...interface{}) {
	l.emit(l.logger.Debug(), msg, fields...)
}

func (l *DefaultLogger) Info(msg string, fields ...interface{}) {
	l.emit(l.logger.Info(), msg, fields...)
}

func (l *DefaultLogger) Warn(msg string, fields ...interface{}) {
	l.emit(l.logger.Warn(), msg, fields...)
}

func (l *DefaultLogger) Error(msg string, fields ...interface{}) {
	l.emit(l.logger.Error(), msg, fields...)
}

func (l *DefaultLogger) emit(event *zerolog.Event, msg string, fields ...interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		event = event.Interface(fmt.Sprintf("%v", fields[i]), fields[i+1])
	}
	event.Msg(msg)
}
