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

package logger

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewFormatter(t *testing.T) {
	textFormatter, ok := NewFormatter("").(*logrus.TextFormatter)
	assert.NotNil(t, textFormatter)
	assert.True(t, ok)

	jsonFormatter, ok := NewFormatter("JSON").(*logrus.JSONFormatter)
	assert.NotNil(t, jsonFormatter)
	assert.True(t, ok)
}

func TestLevelFromName(t *testing.T) {
	tests := []struct {
		name string
		want logrus.Level
	}{
		{"error", logrus.ErrorLevel},
		{"WARN", logrus.WarnLevel},
		{"debug", logrus.DebugLevel},
		{"", logrus.InfoLevel},
		{"bogus", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFromName(tt.name))
		})
	}
}

func TestSetLevel(t *testing.T) {
	l := Get()
	prev := l.GetLevel()
	t.Cleanup(func() { l.SetLevel(prev) })

	SetLevel("error")
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
	SetLevel("info")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestGetKeepsLevel(t *testing.T) {
	l := Get()
	prev := l.GetLevel()
	t.Cleanup(func() { l.SetLevel(prev) })

	SetLevel("error")
	t.Setenv(EnvLogLevel, "debug")
	assert.Same(t, l, Get())
	assert.Equal(t, logrus.ErrorLevel, Get().GetLevel())
}

func TestGetConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Get().WithField("prefix", "test").Debug("concurrent")
			}
		}()
	}
	wg.Wait()
}
