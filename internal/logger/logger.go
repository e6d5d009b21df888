/*
 * Copyright 2026 CloudWeGo Authors
 *
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

// Package logger holds the process-wide logrus logger shared by tagheap packages.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLogLevel selects the level used by Get.
const EnvLogLevel = "TAGHEAP_LOGLEVEL"

var log = logrus.New()

func init() {
	log.Formatter = NewFormatter("")
	log.Out = os.Stderr
	log.SetLevel(levelFromName(os.Getenv(EnvLogLevel)))
}

// Get returns the shared logger. Its level starts from TAGHEAP_LOGLEVEL.
func Get() *logrus.Logger {
	return log
}

// SetLevel changes the level of the shared logger. It is safe to call
// while other goroutines log.
func SetLevel(name string) {
	log.SetLevel(levelFromName(name))
}

// NewFormatter returns a JSON formatter for "json" and a text formatter otherwise.
func NewFormatter(name string) logrus.Formatter {
	if strings.ToLower(name) == "json" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{DisableTimestamp: true}
}

func levelFromName(name string) logrus.Level {
	switch strings.ToLower(name) {
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}
