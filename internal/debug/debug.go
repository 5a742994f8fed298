// Package debug provides tracing for figkit's parsing and rendering
// pipelines.
//
// The debug system follows these principles:
//   - Single switch: FIGKIT_DEBUG=1 enables everything
//   - Zero overhead: one atomic load per render when disabled
//   - Session scoped: each operation gets a unique session ID
//   - Machine parsable: JSON Lines by default, pretty format optional
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// enabled is the global debug flag - set once at startup.
var enabled uint32

// SetEnabled configures debug mode globally.
// Tests use this to drive sessions without touching the environment.
func SetEnabled(on bool) {
	if on {
		atomic.StoreUint32(&enabled, 1)
	} else {
		atomic.StoreUint32(&enabled, 0)
	}
}

// Enabled returns true if debug mode is active.
func Enabled() bool {
	return atomic.LoadUint32(&enabled) == 1
}

var (
	envOnce sync.Once
	envSink Sink
)

// Active reports whether tracing was requested, reading the environment
// on the first call. Recognised variables:
//   - FIGKIT_DEBUG=1: enable tracing
//   - FIGKIT_DEBUG_FILE=path: append events to path instead of stderr
//   - FIGKIT_DEBUG_PRETTY=1: human-readable output instead of JSON Lines
func Active() bool {
	envOnce.Do(initFromEnv)
	return Enabled()
}

func initFromEnv() {
	if os.Getenv("FIGKIT_DEBUG") != "1" {
		return
	}
	var out io.Writer = os.Stderr
	if path := os.Getenv("FIGKIT_DEBUG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			out = f
		}
	}
	if os.Getenv("FIGKIT_DEBUG_PRETTY") == "1" {
		envSink = newLockedSink(NewPrettySink(out))
	} else {
		envSink = newLockedSink(NewJSONSink(out))
	}
	SetEnabled(true)
}

// NewEnvSession opens a session on the environment-selected sink.
// It returns nil when tracing is off; a nil *Session is safe to use.
func NewEnvSession() *Session {
	if !Active() || envSink == nil {
		return nil
	}
	return NewSession(envSink)
}

// Session represents a debug session for a single parse or render
// operation. A session is safe for use within one operation but should
// not be shared across concurrent operations.
type Session struct {
	sessionID string
	sink      Sink
	startTime time.Time
}

// NewSession creates a new debug session with the provided sink.
// Returns nil if debug mode is not enabled or sink is nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		sessionID: generateSessionID(),
		sink:      sink,
		startTime: time.Now(),
	}

	s.Emit("session", "Start", map[string]interface{}{
		"version": "1.0",
	})

	return s
}

// SessionID returns the unique identifier for this session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// Emit sends an event to the sink.
// This is a no-op if the session is nil (fast-path for disabled debug).
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}

	evt := Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.sessionID,
		Phase:     phase,
		Event:     event,
		Data:      data,
	}

	// Write errors are intentionally ignored - debug failures should not break normal operation
	//nolint:errcheck // Debug sink errors are non-critical
	s.sink.Write(evt)
}

// Close flushes and closes the debug session.
// This should be called when the traced operation completes.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	elapsed := time.Since(s.startTime).Milliseconds()
	s.Emit("session", "End", map[string]int64{
		"elapsed_ms": elapsed,
	})

	return s.sink.Close()
}

// generateSessionID creates a unique session identifier.
func generateSessionID() string {
	b := make([]byte, 4)
	_, err := rand.Read(b)
	if err != nil {
		// Fallback to time-based ID if crypto/rand fails
		return hex.EncodeToString([]byte{
			byte(time.Now().UnixNano() >> 24),
			byte(time.Now().UnixNano() >> 16),
			byte(time.Now().UnixNano() >> 8),
			byte(time.Now().UnixNano()),
		})
	}
	return hex.EncodeToString(b)
}

// Event is the base envelope for all debug events.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}

// lockedSink serialises writes from concurrent sessions sharing the
// environment sink.
type lockedSink struct {
	mu    sync.Mutex
	inner Sink
}

func newLockedSink(inner Sink) *lockedSink {
	return &lockedSink{inner: inner}
}

func (s *lockedSink) Write(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Write(event)
}

func (s *lockedSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Flush()
}

func (s *lockedSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Close()
}
