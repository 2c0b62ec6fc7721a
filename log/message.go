// log/message.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"log/slog"
	"time"
)

// Message is one entry in the progress stream that the pipeline's
// concurrent tasks feed and a single consumer (CLI or UI) drains. The
// channel preserves per-producer send order; messages from concurrent
// producers interleave in whatever order their sends complete.
type Message struct {
	Content string
	Level   slog.Level
	Time    time.Time
}

// MessageChanSize bounds the progress channel; producers in goroutine
// contexts block when the consumer falls this far behind.
const MessageChanSize = 32

func NewMessage(content string, level slog.Level) Message {
	return Message{Content: content, Level: level, Time: time.Now()}
}

func DebugMessage(content string) Message {
	return NewMessage(content, slog.LevelDebug)
}

func InfoMessage(content string) Message {
	return NewMessage(content, slog.LevelInfo)
}

func ErrorMessage(content string) Message {
	return NewMessage(content, slog.LevelError)
}

// TrySend delivers msg without blocking; contexts that must not suspend
// (the reconciliation fold, progress callbacks) use it and accept that
// a slow consumer drops the message, which is logged locally instead.
func TrySend(ch chan<- Message, msg Message, lg *Logger) {
	select {
	case ch <- msg:
	default:
		lg.Warnf("progress channel full, dropping: %s", msg.Content)
	}
}

// Log writes the message to the logger at the message's level.
func (m Message) Log(lg *Logger) {
	switch m.Level {
	case slog.LevelDebug:
		lg.Debug(m.Content)
	case slog.LevelWarn:
		lg.Warn(m.Content)
	case slog.LevelError:
		lg.Error(m.Content)
	default:
		lg.Info(m.Content)
	}
}
