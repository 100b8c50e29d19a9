package avkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(module *fakeModule) *Client {
	options := NewPlaybackOptions()
	options.ProgressInterval = 5 * time.Millisecond
	client := NewClient(module, NewRecordingConfig(), options)
	client.recorder.pollInterval = 5 * time.Millisecond
	return client
}

func TestClientRecordClip(t *testing.T) {
	module := newFakeModule()
	module.recorder.setStatus(RecorderStatus{
		IsRecording:    true,
		DurationMillis: 25,
		URI:            "file:///tmp/clip.wav",
	})
	client := newTestClient(module)
	defer client.Cleanup()

	uri, err := client.RecordClip(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp/clip.wav", uri)
	assert.Equal(t, RecordingStopped, client.Recorder().Session().State())
}

func TestClientRecordClipCancelled(t *testing.T) {
	module := newFakeModule()
	client := newTestClient(module)
	defer client.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.RecordClip(ctx, time.Minute)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeRecordingFailed))
	assert.Equal(t, RecordingIdle, client.Recorder().Session().State(), "cancel resets the session")
}

func TestClientPlayFileUntilCompletion(t *testing.T) {
	module := newFakeModule()
	module.sound.setStatus(PlaybackStatus{IsLoaded: true, DurationMillis: 100})
	client := newTestClient(module)
	defer client.Cleanup()

	go func() {
		time.Sleep(15 * time.Millisecond)
		module.sound.setStatus(PlaybackStatus{
			IsLoaded:       true,
			DurationMillis: 100,
			PositionMillis: 100,
			DidJustFinish:  true,
		})
	}()

	require.NoError(t, client.PlayFile(context.Background(), "clip.wav"))
	assert.True(t, module.sound.unloaded, "source is unloaded on return")
	assert.Equal(t, PlaybackIdle, client.Player().Session().State())
}

func TestClientPlayFileLoadFailure(t *testing.T) {
	module := newFakeModule()
	module.soundErr = errors.New("bad file")
	client := newTestClient(module)
	defer client.Cleanup()

	err := client.PlayFile(context.Background(), "broken.wav")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeLoadFailed))
}

func TestClientPlayFileCancelled(t *testing.T) {
	module := newFakeModule()
	module.sound.setStatus(PlaybackStatus{IsLoaded: true, DurationMillis: 60000})
	client := newTestClient(module)
	defer client.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(15 * time.Millisecond)
		cancel()
	}()

	err := client.PlayFile(ctx, "clip.wav")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodePlaybackFailed))
	assert.True(t, module.sound.unloaded)
}

func TestClientPermissions(t *testing.T) {
	ctx := context.Background()
	module := newFakeModule()
	client := newTestClient(module)
	defer client.Cleanup()

	assert.Equal(t, PermissionGranted, client.RequestPermission(ctx))
	assert.Equal(t, PermissionGranted, client.PermissionStatus(ctx))

	module.permission = PermissionDenied
	assert.Equal(t, PermissionDenied, client.PermissionStatus(ctx))

	module.permissionErr = errors.New("bridge down")
	assert.Equal(t, PermissionDenied, client.RequestPermission(ctx), "request failure reads as denied")
	assert.Equal(t, PermissionUndetermined, client.PermissionStatus(ctx), "query failure reads as undetermined")
}

func TestClientSetAudioMode(t *testing.T) {
	ctx := context.Background()
	module := newFakeModule()
	client := newTestClient(module)
	defer client.Cleanup()

	mode := AudioMode{AllowRecording: true, PlaysInSilentMode: true}
	require.NoError(t, client.SetAudioMode(ctx, mode))
	assert.Equal(t, mode, module.mode)

	module.modeErr = errors.New("session busy")
	err := client.SetAudioMode(ctx, mode)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeDeviceNotAvailable))
}

func TestClientCleanupIdempotent(t *testing.T) {
	client := newTestClient(newFakeModule())
	client.Cleanup()
	client.Cleanup()
	assert.Equal(t, RecordingIdle, client.Recorder().Session().State())
	assert.Equal(t, PlaybackIdle, client.Player().Session().State())
}
