package avkit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecordingSession tracks one in-flight or completed recording attempt. It
// is owned by exactly one Recorder; all writes flow through the validated
// transition table.
type RecordingSession struct {
	mu         sync.RWMutex
	id         string
	state      RecordingState
	config     *RecordingConfig
	uri        string
	duration   int64
	lastError  *Error
	lastStatus *RecorderStatus
	createdAt  time.Time
}

// NewRecordingSession creates an idle session for the given config. A nil
// config gets the defaults.
func NewRecordingSession(config *RecordingConfig) *RecordingSession {
	if config == nil {
		config = NewRecordingConfig()
	}
	return &RecordingSession{
		id:        uuid.NewString(),
		state:     RecordingIdle,
		config:    config,
		createdAt: time.Now(),
	}
}

// canTransitionRecording is the allowed transition table. The error state is
// reachable from anywhere; leaving it requires Reset.
func canTransitionRecording(from, to RecordingState) bool {
	if to == RecordingError {
		return true
	}
	switch from {
	case RecordingIdle:
		return to == RecordingPreparing || to == RecordingActive
	case RecordingPreparing:
		return to == RecordingIdle
	case RecordingActive:
		return to == RecordingPaused || to == RecordingStopping
	case RecordingPaused:
		return to == RecordingActive || to == RecordingStopping
	case RecordingStopping:
		return to == RecordingStopped
	case RecordingStopped:
		return to == RecordingPreparing || to == RecordingActive
	default:
		return false
	}
}

func (s *RecordingSession) transition(to RecordingState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !canTransitionRecording(s.state, to) {
		return NewRecordingError(fmt.Sprintf("illegal transition %s -> %s", s.state, to))
	}
	s.state = to
	return nil
}

// fail captures err onto the session and forces the error state.
func (s *RecordingSession) fail(err *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.state = RecordingError
}

func (s *RecordingSession) setURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uri == "" {
		return
	}
	switch s.state {
	case RecordingActive, RecordingPaused, RecordingStopping, RecordingStopped:
		s.uri = uri
	}
}

// setDuration keeps the recorded duration monotonically non-decreasing while
// the take is live; it is frozen once stopped.
func (s *RecordingSession) setDuration(millis int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == RecordingStopped {
		return
	}
	if millis > s.duration {
		s.duration = millis
	}
}

func (s *RecordingSession) setStatus(status RecorderStatus) {
	s.mu.Lock()
	s.lastStatus = &status
	s.mu.Unlock()
	s.setDuration(status.DurationMillis)
	s.setURI(status.URI)
}

// Reset returns the session to idle, clearing uri, duration, and error.
func (s *RecordingSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = RecordingIdle
	s.uri = ""
	s.duration = 0
	s.lastError = nil
	s.lastStatus = nil
}

func (s *RecordingSession) ID() string {
	return s.id
}

func (s *RecordingSession) State() RecordingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *RecordingSession) Config() *RecordingConfig {
	return s.config
}

// URI returns the output file path, or "" while the native layer has not
// assigned one.
func (s *RecordingSession) URI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uri
}

func (s *RecordingSession) DurationMillis() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

func (s *RecordingSession) LastError() *Error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *RecordingSession) LastStatus() *RecorderStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStatus
}

// CanRecord reports whether a new take may start.
func (s *RecordingSession) CanRecord() bool {
	st := s.State()
	return st == RecordingIdle || st == RecordingStopped
}

func (s *RecordingSession) CanPause() bool {
	return s.State() == RecordingActive
}

func (s *RecordingSession) CanResume() bool {
	return s.State() == RecordingPaused
}

func (s *RecordingSession) CanStop() bool {
	st := s.State()
	return st == RecordingActive || st == RecordingPaused
}

// PlaybackSession tracks one loaded audio/video source. It is owned by
// exactly one Player.
type PlaybackSession struct {
	mu         sync.RWMutex
	id         string
	state      PlaybackState
	options    *PlaybackOptions
	uri        string
	duration   int64
	position   int64
	lastError  *Error
	lastStatus *PlaybackStatus
	createdAt  time.Time
}

// NewPlaybackSession creates an idle session with the given options. A nil
// options gets the defaults.
func NewPlaybackSession(options *PlaybackOptions) *PlaybackSession {
	if options == nil {
		options = NewPlaybackOptions()
	}
	return &PlaybackSession{
		id:        uuid.NewString(),
		state:     PlaybackIdle,
		options:   options,
		createdAt: time.Now(),
	}
}

func canTransitionPlayback(from, to PlaybackState) bool {
	if to == PlaybackError {
		return true
	}
	switch from {
	case PlaybackIdle:
		return to == PlaybackLoading || to == PlaybackPlaying
	case PlaybackLoading:
		return to == PlaybackReady || to == PlaybackStopped
	case PlaybackReady:
		return to == PlaybackPlaying
	case PlaybackPlaying:
		return to == PlaybackPaused || to == PlaybackStopped || to == PlaybackCompleted
	case PlaybackPaused:
		return to == PlaybackPlaying || to == PlaybackStopped
	case PlaybackStopped:
		return to == PlaybackPlaying || to == PlaybackLoading
	case PlaybackCompleted:
		return to == PlaybackPlaying
	default:
		return false
	}
}

func (s *PlaybackSession) transition(to PlaybackState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !canTransitionPlayback(s.state, to) {
		return NewPlaybackError(fmt.Sprintf("illegal transition %s -> %s", s.state, to))
	}
	s.state = to
	return nil
}

func (s *PlaybackSession) fail(err *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.state = PlaybackError
}

func (s *PlaybackSession) setLoaded(uri string, durationMillis, positionMillis int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uri = uri
	s.duration = durationMillis
	s.position = ClampPosition(positionMillis, durationMillis)
}

// SetPosition writes a position clamped to [0, duration].
func (s *PlaybackSession) SetPosition(positionMillis int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = ClampPosition(positionMillis, s.duration)
}

// applyStatus synchronizes a native status snapshot into the session.
func (s *PlaybackSession) applyStatus(status PlaybackStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStatus = &status
	if status.DurationMillis > 0 {
		s.duration = status.DurationMillis
	}
	s.position = ClampPosition(status.PositionMillis, s.duration)
}

// Reset returns the session to idle, clearing uri, duration, position, and
// error. The options survive so the next load behaves the same.
func (s *PlaybackSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = PlaybackIdle
	s.uri = ""
	s.duration = 0
	s.position = 0
	s.lastError = nil
	s.lastStatus = nil
}

func (s *PlaybackSession) ID() string {
	return s.id
}

func (s *PlaybackSession) State() PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *PlaybackSession) Options() *PlaybackOptions {
	return s.options
}

func (s *PlaybackSession) URI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uri
}

func (s *PlaybackSession) DurationMillis() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

func (s *PlaybackSession) PositionMillis() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

func (s *PlaybackSession) LastError() *Error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *PlaybackSession) LastStatus() *PlaybackStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStatus
}

// Progress returns position/duration in [0, 1], 0 when duration is 0.
func (s *PlaybackSession) Progress() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.duration <= 0 {
		return 0
	}
	return float64(s.position) / float64(s.duration)
}

func (s *PlaybackSession) CanPlay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.uri == "" {
		return false
	}
	switch s.state {
	case PlaybackIdle, PlaybackReady, PlaybackPaused, PlaybackStopped, PlaybackCompleted:
		return true
	default:
		return false
	}
}

func (s *PlaybackSession) CanPause() bool {
	return s.State() == PlaybackPlaying
}

func (s *PlaybackSession) CanStop() bool {
	switch s.State() {
	case PlaybackPlaying, PlaybackPaused, PlaybackLoading:
		return true
	default:
		return false
	}
}

func (s *PlaybackSession) CanSeek() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.uri == "" {
		return false
	}
	switch s.state {
	case PlaybackReady, PlaybackPlaying, PlaybackPaused, PlaybackStopped, PlaybackCompleted:
		return true
	default:
		return false
	}
}
