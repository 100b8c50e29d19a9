package avkit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Recorder drives one native recorder handle through the recording
// lifecycle and keeps its RecordingSession synchronized. One Recorder owns
// at most one native handle at a time; a second Prepare tears down the
// prior handle first.
type Recorder struct {
	native         NativeModule
	session        *RecordingSession
	platform       Platform
	handle         NativeRecorder
	pollInterval   time.Duration
	pollCancel     context.CancelFunc
	pollDone       chan struct{}
	statusHandlers map[int]RecordingStatusHandler
	nextHandlerID  int
	logger         *Logger
	mu             sync.Mutex

	// handlersMu is separate so poll ticks never contend with coordinator
	// operations holding mu.
	handlersMu sync.Mutex
}

// NewRecorder creates a recorder bound to the given native module and
// session. A nil session gets a fresh one with default config.
func NewRecorder(native NativeModule, session *RecordingSession) *Recorder {
	if session == nil {
		session = NewRecordingSession(nil)
	}
	return &Recorder{
		native:         native,
		session:        session,
		platform:       PlatformMobile,
		pollInterval:   DefaultRecordingPoll,
		statusHandlers: make(map[int]RecordingStatusHandler),
		logger:         GetGlobalLogger().WithComponent("Recorder"),
	}
}

// Session returns the session this recorder owns.
func (r *Recorder) Session() *RecordingSession {
	return r.session
}

// SetPlatform selects the native option mapping used by Prepare.
func (r *Recorder) SetPlatform(p Platform) {
	r.mu.Lock()
	r.platform = p
	r.mu.Unlock()
}

// AddStatusHandler registers a handler invoked on every status poll tick.
// The returned function removes it.
func (r *Recorder) AddStatusHandler(handler RecordingStatusHandler) func() {
	r.handlersMu.Lock()
	id := r.nextHandlerID
	r.nextHandlerID++
	r.statusHandlers[id] = handler
	r.handlersMu.Unlock()

	return func() {
		r.handlersMu.Lock()
		delete(r.statusHandlers, id)
		r.handlersMu.Unlock()
	}
}

// Prepare allocates a new native recorder handle and readies it with the
// platform-shaped options derived from the session config. On success the
// session passes through the preparing state back to idle; on native
// failure the error is captured onto the session and returned.
func (r *Recorder) Prepare(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A leftover handle from a prior take is torn down best-effort.
	if r.handle != nil {
		r.stopPollLocked()
		if err := r.handle.Stop(ctx); err != nil {
			r.logger.WithError(err).Debug("discarding stale recorder handle")
		}
		r.handle = nil
	}

	if err := r.session.transition(RecordingPreparing); err != nil {
		return err
	}

	config := r.session.Config()
	if issues := config.Validate(); len(issues) > 0 {
		kitErr := NewRecordingError(fmt.Sprintf("invalid recording config: %v", issues))
		r.session.fail(kitErr)
		return kitErr
	}

	handle, err := r.native.NewRecorder(ctx, config.NativeOptions(r.platform))
	if err != nil {
		kitErr := WrapError(err, ErrCodeRecordingFailed)
		r.session.fail(kitErr)
		return kitErr
	}
	if err := handle.Prepare(ctx); err != nil {
		kitErr := WrapError(err, ErrCodeRecordingFailed)
		r.session.fail(kitErr)
		return kitErr
	}

	if err := r.session.transition(RecordingIdle); err != nil {
		return err
	}
	r.handle = handle
	r.logger.WithField("session_id", r.session.ID()).Debug("recorder prepared")
	return nil
}

// Start begins recording on the prepared handle, seeds uri/duration from
// one status read, starts the status poll loop, and returns the output URI
// (possibly still empty if the native layer has not assigned one).
func (r *Recorder) Start(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle == nil {
		return "", NewRecordingError("no prepared recorder handle")
	}
	if err := r.session.transition(RecordingActive); err != nil {
		return "", err
	}
	if err := r.handle.Start(ctx); err != nil {
		kitErr := WrapError(err, ErrCodeRecordingFailed)
		r.session.fail(kitErr)
		return "", kitErr
	}

	if status, err := r.handle.Status(ctx); err == nil {
		r.session.setStatus(status)
	}
	r.startPollLocked()

	uri := r.session.URI()
	r.logger.WithField("uri", uri).Info("recording started")
	return uri, nil
}

// Pause suspends the take. Calling it outside the recording state returns
// an error and leaves the session untouched; a native failure forces the
// error state.
func (r *Recorder) Pause(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.session.CanPause() {
		return NewRecordingError(fmt.Sprintf("cannot pause in state %s", r.session.State()))
	}
	if r.handle == nil {
		return NewRecordingError("no recorder handle")
	}
	if err := r.handle.Pause(ctx); err != nil {
		kitErr := WrapError(err, ErrCodeRecordingFailed)
		r.session.fail(kitErr)
		return kitErr
	}
	return r.session.transition(RecordingPaused)
}

// Resume continues a paused take.
func (r *Recorder) Resume(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.session.CanResume() {
		return NewRecordingError(fmt.Sprintf("cannot resume in state %s", r.session.State()))
	}
	if r.handle == nil {
		return NewRecordingError("no recorder handle")
	}
	if err := r.handle.Resume(ctx); err != nil {
		kitErr := WrapError(err, ErrCodeRecordingFailed)
		r.session.fail(kitErr)
		return kitErr
	}
	return r.session.transition(RecordingActive)
}

// Stop finalizes the take, captures the final uri/duration, stops the poll
// loop, and releases the native handle. Returns the final URI.
func (r *Recorder) Stop(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.session.CanStop() {
		return "", NewRecordingError(fmt.Sprintf("cannot stop in state %s", r.session.State()))
	}
	if r.handle == nil {
		return "", NewRecordingError("no recorder handle")
	}
	if err := r.session.transition(RecordingStopping); err != nil {
		return "", err
	}
	if err := r.handle.Stop(ctx); err != nil {
		kitErr := WrapError(err, ErrCodeRecordingFailed)
		r.session.fail(kitErr)
		return "", kitErr
	}
	if status, err := r.handle.Status(ctx); err == nil {
		r.session.setStatus(status)
	}
	if err := r.session.transition(RecordingStopped); err != nil {
		return "", err
	}

	r.stopPollLocked()
	r.handle = nil

	uri := r.session.URI()
	r.logger.WithField("uri", uri).
		WithField("duration_millis", r.session.DurationMillis()).
		Info("recording stopped")
	return uri, nil
}

// Cancel discards the take: best-effort stop-and-unload of any handle, then
// an unconditional reset back to idle. Native errors are captured onto the
// session but not propagated.
func (r *Recorder) Cancel(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopPollLocked()
	if r.handle != nil {
		if err := r.handle.Stop(ctx); err != nil {
			r.session.fail(WrapError(err, ErrCodeRecordingFailed))
			r.logger.WithError(err).Warn("cancel: native stop failed")
		}
		r.handle = nil
	}
	r.session.Reset()
}

// Dispose stops polling, drops the handle reference without calling it, and
// resets the session. Safe to call repeatedly; never fails.
func (r *Recorder) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopPollLocked()
	r.handle = nil
	r.session.Reset()
}

// startPollLocked launches the status poll loop for the current handle.
// Caller holds r.mu.
func (r *Recorder) startPollLocked() {
	r.stopPollLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.pollCancel = cancel
	r.pollDone = done

	handle := r.handle
	go func() {
		defer close(done)
		ticker := time.NewTicker(r.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status, err := handle.Status(ctx)
				if err != nil {
					// Handle torn down externally; the loop just ends.
					r.logger.WithError(err).Debug("recording poll tick failed, stopping loop")
					return
				}
				r.session.setStatus(status)
				r.notifyStatus(status)
				if status.IsDoneRecording {
					return
				}
			}
		}
	}()
}

// stopPollLocked cancels the poll loop and waits for it to wind down.
// Caller holds r.mu.
func (r *Recorder) stopPollLocked() {
	if r.pollCancel == nil {
		return
	}
	r.pollCancel()
	r.pollCancel = nil
	<-r.pollDone
	r.pollDone = nil
}

func (r *Recorder) notifyStatus(status RecorderStatus) {
	r.handlersMu.Lock()
	handlers := make([]RecordingStatusHandler, 0, len(r.statusHandlers))
	for _, h := range r.statusHandlers {
		handlers = append(handlers, h)
	}
	r.handlersMu.Unlock()
	for _, h := range handlers {
		go h(status)
	}
}
