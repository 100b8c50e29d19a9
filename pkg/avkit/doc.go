// Package avkit provides a typed Go SDK over a native audio
// recording-and-playback module.
//
// # Overview
//
// The SDK wraps an external native audio module (anything implementing
// NativeModule) behind two small coordinators:
//   - Recorder drives one native recorder handle through
//     prepare/start/pause/resume/stop and polls its status on an interval.
//   - Player drives one native sound handle through
//     load/play/pause/stop/seek plus volume/rate/loop/mute setters and
//     detects natural end of media.
//
// Each coordinator owns exactly one session entity (RecordingSession or
// PlaybackSession) holding the lifecycle state, last known URI,
// duration/position, last error, and the last raw native status snapshot.
// All state changes flow through a validated transition table.
//
// # Quick Start
//
//	native := avkit.NewPortAudioModule("")
//	client := avkit.NewClient(native, nil, nil)
//	defer client.Cleanup()
//
//	rec := client.Recorder()
//	if err := rec.Prepare(ctx); err != nil {
//		log.Fatal(err)
//	}
//	uri, err := rec.Start(ctx)
//	...
//	uri, err = rec.Stop(ctx)
//
// Playback works the same way:
//
//	p := client.Player()
//	if err := p.Load(ctx, "take.wav"); err != nil {
//		log.Fatal(err)
//	}
//	p.Play(ctx)
//
// # Configuration
//
// RecordingConfig and PlaybackOptions carry documented defaults (volume 1.0,
// rate 1.0, progress interval 500ms, sample rate 44100, bit rate 128000).
// Both can be overridden from the environment via AVKIT_* variables; see
// NewRecordingConfig and NewPlaybackOptions.
//
// # Error Handling
//
// Every failure surfaces as *avkit.Error carrying one of the ErrCode*
// constants (PERMISSION_DENIED, RECORDING_FAILED, PLAYBACK_FAILED,
// LOAD_FAILED, INVALID_URI, UNSUPPORTED_FORMAT, DEVICE_NOT_AVAILABLE,
// UNKNOWN). State-mutating operations that fail a native call capture the
// error onto the owning session (state moves to the error state) and return
// it to the caller; passive queries such as permission lookups swallow
// native errors and return a safe default instead.
//
// # Thread Safety
//
// Coordinators and sessions are safe for concurrent use; the status poll
// loop runs as an explicit cancellable task that the coordinator stops
// synchronously in Stop/Unload/Dispose.
//
// # Dependencies
//
//   - github.com/gordonklaus/portaudio: reference native backend I/O
//   - github.com/go-audio/wav: WAV encode/decode for the reference backend
//   - github.com/hajimehoshi/go-mp3: MP3 decode for the reference backend
//   - github.com/jfreymuth/oggvorbis: OGG decode for the reference backend
//   - github.com/rs/zerolog: structured logging
//   - github.com/spf13/cobra: CLI framework
//   - github.com/joho/godotenv: environment variables
package avkit
