// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	entry := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "fetch failed",
		Timestamp: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		Fields:    log.Fields{"city": "AUSTIN", "error": errors.New("boom")},
	}

	assert.NoError(t, h.HandleLog(entry))
	assert.Equal(t, "2025-03-04 05:06:07 W fetch failed city=AUSTIN error=boom\n", buf.String())
}

func TestInitLoggerLevel(t *testing.T) {
	t.Setenv("H1BCTL_LOG", "debug")
	InitLogger()

	l, ok := log.Log.(*log.Logger)
	assert.True(t, ok)
	assert.Equal(t, log.DebugLevel, l.Level)

	t.Setenv("H1BCTL_LOG", "")
	InitLogger()
	assert.Equal(t, log.ErrorLevel, l.Level)
}
