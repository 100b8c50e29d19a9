package avkit

import (
	"context"
	"time"
)

// Client is the SDK facade: it owns one Recorder and one Player bound to
// the same native module, plus the shared teardown path. Consumers needing
// several concurrent sessions create additional coordinators directly.
type Client struct {
	native   NativeModule
	recorder *Recorder
	player   *Player
	logger   *Logger
}

// NewClient creates a client with fresh sessions. Nil config/options get
// the documented defaults.
func NewClient(native NativeModule, config *RecordingConfig, options *PlaybackOptions) *Client {
	return &Client{
		native:   native,
		recorder: NewRecorder(native, NewRecordingSession(config)),
		player:   NewPlayer(native, NewPlaybackSession(options)),
		logger:   GetGlobalLogger().WithComponent("Client"),
	}
}

// Recorder returns the client's recording coordinator.
func (c *Client) Recorder() *Recorder {
	return c.recorder
}

// Player returns the client's playback coordinator.
func (c *Client) Player() *Player {
	return c.player
}

// RequestPermission prompts for recording permission; native errors read as
// denied.
func (c *Client) RequestPermission(ctx context.Context) PermissionStatus {
	return RequestRecordingPermission(ctx, c.native)
}

// PermissionStatus queries recording permission without prompting; native
// errors read as undetermined.
func (c *Client) PermissionStatus(ctx context.Context) PermissionStatus {
	return GetRecordingPermissionStatus(ctx, c.native)
}

// SetAudioMode configures the module-level audio session.
func (c *Client) SetAudioMode(ctx context.Context, mode AudioMode) error {
	if err := c.native.SetAudioMode(ctx, mode); err != nil {
		return WrapError(err, ErrCodeDeviceNotAvailable)
	}
	return nil
}

// RecordClip runs a full prepare/start/stop cycle bounded by the given
// duration and returns the output URI.
func (c *Client) RecordClip(ctx context.Context, duration time.Duration) (string, error) {
	if err := c.recorder.Prepare(ctx); err != nil {
		return "", err
	}
	if _, err := c.recorder.Start(ctx); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		c.recorder.Cancel(context.Background())
		return "", WrapError(ctx.Err(), ErrCodeRecordingFailed)
	case <-time.After(duration):
	}

	return c.recorder.Stop(ctx)
}

// PlayFile loads the given URI, plays it, and blocks until the media
// completes, the player leaves the playing state, or ctx is cancelled. The
// source is unloaded before returning.
func (c *Client) PlayFile(ctx context.Context, uri string) error {
	if err := c.player.Load(ctx, uri); err != nil {
		return err
	}
	defer c.player.Unload(context.Background())

	finished := make(chan struct{})
	remove := c.player.AddCompletionHandler(func(string) {
		close(finished)
	})
	defer remove()

	if err := c.player.Play(ctx); err != nil {
		return err
	}

	interval := c.player.Session().Options().ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return WrapError(ctx.Err(), ErrCodePlaybackFailed)
		case <-finished:
			return nil
		case <-ticker.C:
			switch c.player.Session().State() {
			case PlaybackPlaying, PlaybackPaused:
			default:
				return nil
			}
		}
	}
}

// Cleanup disposes both coordinators. Safe to call repeatedly.
func (c *Client) Cleanup() {
	c.recorder.Dispose()
	c.player.Dispose()
	c.logger.Debug("client cleaned up")
}
