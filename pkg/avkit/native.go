package avkit

import "context"

// NativeModule is the external native audio collaborator. The SDK never
// performs decoding, encoding, or device I/O itself; it sequences calls to
// these primitives and maps their result shapes onto the session types.
type NativeModule interface {
	// NewRecorder allocates a fresh recorder handle for one take.
	NewRecorder(ctx context.Context, opts NativeRecordingOptions) (NativeRecorder, error)

	// NewSound loads the given URI into a fresh sound handle, applying the
	// initial playback options (volume, loop, mute, rate, shouldPlay).
	NewSound(ctx context.Context, uri string, opts PlaybackOptions) (NativeSound, error)

	// RequestPermission prompts for recording permission.
	RequestPermission(ctx context.Context) (PermissionStatus, error)

	// GetPermissionStatus queries the current permission without prompting.
	GetPermissionStatus(ctx context.Context) (PermissionStatus, error)

	// SetAudioMode configures the module-level audio session.
	SetAudioMode(ctx context.Context, mode AudioMode) error
}

// NativeRecorder is one active native recorder handle.
type NativeRecorder interface {
	Prepare(ctx context.Context) error
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error

	// Stop finalizes the take and unloads the handle. Status stays callable
	// afterwards and reports IsDoneRecording with the final duration and URI.
	Stop(ctx context.Context) error

	Status(ctx context.Context) (RecorderStatus, error)
}

// NativeSound is one active native sound-player handle.
type NativeSound interface {
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	Seek(ctx context.Context, positionMillis int64) error

	SetVolume(ctx context.Context, volume float64) error
	SetRate(ctx context.Context, rate float64, correctPitch bool) error
	SetLooping(ctx context.Context, looping bool) error
	SetMuted(ctx context.Context, muted bool) error

	// Unload releases the handle. Status afterwards reports IsLoaded=false.
	Unload(ctx context.Context) error

	Status(ctx context.Context) (PlaybackStatus, error)
}
