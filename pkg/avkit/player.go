package avkit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Player drives one native sound handle through the playback lifecycle and
// keeps its PlaybackSession synchronized. One Player owns at most one
// native handle at a time; loading a new source unloads the prior one.
type Player struct {
	native             NativeModule
	session            *PlaybackSession
	handle             NativeSound
	pollCancel         context.CancelFunc
	pollDone           chan struct{}
	statusHandlers     map[int]PlaybackStatusHandler
	completionHandlers map[int]CompletionHandler
	nextHandlerID      int
	logger             *Logger
	mu                 sync.Mutex

	// handlersMu is separate so poll ticks never contend with coordinator
	// operations holding mu.
	handlersMu sync.Mutex
}

// NewPlayer creates a player bound to the given native module and session.
// A nil session gets a fresh one with default options.
func NewPlayer(native NativeModule, session *PlaybackSession) *Player {
	if session == nil {
		session = NewPlaybackSession(nil)
	}
	return &Player{
		native:             native,
		session:            session,
		statusHandlers:     make(map[int]PlaybackStatusHandler),
		completionHandlers: make(map[int]CompletionHandler),
		logger:             GetGlobalLogger().WithComponent("Player"),
	}
}

// Session returns the session this player owns.
func (p *Player) Session() *PlaybackSession {
	return p.session
}

// AddStatusHandler registers a handler invoked on every status poll tick.
// The returned function removes it.
func (p *Player) AddStatusHandler(handler PlaybackStatusHandler) func() {
	p.handlersMu.Lock()
	id := p.nextHandlerID
	p.nextHandlerID++
	p.statusHandlers[id] = handler
	p.handlersMu.Unlock()

	return func() {
		p.handlersMu.Lock()
		delete(p.statusHandlers, id)
		p.handlersMu.Unlock()
	}
}

// AddCompletionHandler registers a handler invoked once when a non-looping
// source plays to its natural end. The returned function removes it.
func (p *Player) AddCompletionHandler(handler CompletionHandler) func() {
	p.handlersMu.Lock()
	id := p.nextHandlerID
	p.nextHandlerID++
	p.completionHandlers[id] = handler
	p.handlersMu.Unlock()

	return func() {
		p.handlersMu.Lock()
		delete(p.completionHandlers, id)
		p.handlersMu.Unlock()
	}
}

// Load creates a native sound handle from the given URI using the session's
// current options, seeds duration/position from the initial native status,
// and starts the status poll loop. A handle already loaded is unloaded
// first.
func (p *Player) Load(ctx context.Context, uri string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if uri == "" {
		return NewInvalidURIError(uri)
	}
	if p.handle != nil {
		p.unloadLocked(ctx)
	}
	if err := p.session.transition(PlaybackLoading); err != nil {
		return err
	}

	opts := p.session.Options()
	handle, err := p.native.NewSound(ctx, uri, *opts)
	if err != nil {
		kitErr := WrapError(err, ErrCodeLoadFailed)
		p.session.fail(kitErr)
		return kitErr
	}

	if status, statusErr := handle.Status(ctx); statusErr == nil {
		p.session.setLoaded(uri, status.DurationMillis, status.PositionMillis)
		p.session.applyStatus(status)
	} else {
		p.session.setLoaded(uri, 0, 0)
	}

	if err := p.session.transition(PlaybackReady); err != nil {
		return err
	}
	p.handle = handle
	p.startPollLocked()

	p.logger.WithField("uri", uri).
		WithField("duration_millis", p.session.DurationMillis()).
		Info("sound loaded")
	return nil
}

// Play starts or resumes playback.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	if !p.session.CanPlay() {
		return NewPlaybackError(fmt.Sprintf("cannot play in state %s", p.session.State()))
	}
	if err := p.handle.Play(ctx); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	return p.session.transition(PlaybackPlaying)
}

// Pause suspends playback.
func (p *Player) Pause(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	if !p.session.CanPause() {
		return NewPlaybackError(fmt.Sprintf("cannot pause in state %s", p.session.State()))
	}
	if err := p.handle.Pause(ctx); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	return p.session.transition(PlaybackPaused)
}

// Stop halts playback and rewinds the position to zero.
func (p *Player) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	if !p.session.CanStop() {
		return NewPlaybackError(fmt.Sprintf("cannot stop in state %s", p.session.State()))
	}
	if err := p.handle.Stop(ctx); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	if err := p.session.transition(PlaybackStopped); err != nil {
		return err
	}
	p.session.SetPosition(0)
	return nil
}

// Seek moves playback to the given position; the session records the
// clamped value.
func (p *Player) Seek(ctx context.Context, positionMillis int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	if !p.session.CanSeek() {
		return NewPlaybackError(fmt.Sprintf("cannot seek in state %s", p.session.State()))
	}
	clamped := ClampPosition(positionMillis, p.session.DurationMillis())
	if err := p.handle.Seek(ctx, clamped); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	p.session.SetPosition(clamped)
	return nil
}

// SetVolume forwards a clamped volume to the native handle and mirrors it
// into the session options.
func (p *Player) SetVolume(ctx context.Context, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	clamped := ClampVolume(volume)
	if err := p.handle.SetVolume(ctx, clamped); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	p.session.Options().Volume = clamped
	return nil
}

// SetRate forwards a clamped playback rate to the native handle and mirrors
// it into the session options.
func (p *Player) SetRate(ctx context.Context, rate float64, correctPitch bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	clamped := ClampRate(rate)
	if err := p.handle.SetRate(ctx, clamped, correctPitch); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	p.session.Options().Rate = clamped
	return nil
}

// SetLooping toggles looping on the native handle and mirrors it into the
// session options.
func (p *Player) SetLooping(ctx context.Context, looping bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	if err := p.handle.SetLooping(ctx, looping); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	p.session.Options().IsLooping = looping
	return nil
}

// SetMuted toggles mute on the native handle and mirrors it into the
// session options.
func (p *Player) SetMuted(ctx context.Context, muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == nil {
		return NewPlaybackError("no sound loaded")
	}
	if err := p.handle.SetMuted(ctx, muted); err != nil {
		kitErr := WrapError(err, ErrCodePlaybackFailed)
		p.session.fail(kitErr)
		return kitErr
	}
	p.session.Options().IsMuted = muted
	return nil
}

// Unload releases the native handle, stops the poll loop, and resets the
// session unconditionally. A native unload failure is returned after the
// cleanup has run.
func (p *Player) Unload(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unloadLocked(ctx)
}

func (p *Player) unloadLocked(ctx context.Context) error {
	p.stopPollLocked()
	var err error
	if p.handle != nil {
		err = p.handle.Unload(ctx)
		p.handle = nil
	}
	p.session.Reset()
	if err != nil {
		p.logger.WithError(err).Warn("native unload failed")
		return WrapError(err, ErrCodePlaybackFailed)
	}
	return nil
}

// Dispose stops polling, drops the handle reference without an unload call,
// and resets the session. Safe to call repeatedly; never fails.
func (p *Player) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopPollLocked()
	p.handle = nil
	p.session.Reset()
}

// startPollLocked launches the status poll loop for the current handle at
// the session's progress interval. Caller holds p.mu.
func (p *Player) startPollLocked() {
	p.stopPollLocked()

	interval := p.session.Options().ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.pollCancel = cancel
	p.pollDone = done

	handle := p.handle
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status, err := handle.Status(ctx)
				if err != nil {
					// Handle torn down externally; the loop just ends.
					p.logger.WithError(err).Debug("playback poll tick failed, stopping loop")
					return
				}
				if !status.IsLoaded {
					return
				}
				p.session.applyStatus(status)
				p.notifyStatus(status)
				if status.DidJustFinish && !status.IsLooping {
					if err := p.session.transition(PlaybackCompleted); err != nil {
						p.logger.WithError(err).Debug("completion transition rejected")
					} else {
						p.notifyCompletion(p.session.URI())
					}
					return
				}
			}
		}
	}()
}

// stopPollLocked cancels the poll loop and waits for it to wind down.
// Caller holds p.mu.
func (p *Player) stopPollLocked() {
	if p.pollCancel == nil {
		return
	}
	p.pollCancel()
	p.pollCancel = nil
	<-p.pollDone
	p.pollDone = nil
}

func (p *Player) notifyStatus(status PlaybackStatus) {
	p.handlersMu.Lock()
	handlers := make([]PlaybackStatusHandler, 0, len(p.statusHandlers))
	for _, h := range p.statusHandlers {
		handlers = append(handlers, h)
	}
	p.handlersMu.Unlock()
	for _, h := range handlers {
		go h(status)
	}
}

func (p *Player) notifyCompletion(uri string) {
	p.handlersMu.Lock()
	handlers := make([]CompletionHandler, 0, len(p.completionHandlers))
	for _, h := range p.completionHandlers {
		handlers = append(handlers, h)
	}
	p.handlersMu.Unlock()
	for _, h := range handlers {
		go h(uri)
	}
}
