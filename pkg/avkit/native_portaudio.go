package avkit

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"
)

// PortAudioModule is the reference NativeModule backed by PortAudio. It
// records PCM takes to WAV and plays WAV/MP3/OGG files through the default
// output device. Desktop systems have no permission broker, so permission
// calls always report granted.
type PortAudioModule struct {
	dir  string
	mode AudioMode
	mu   sync.Mutex
}

// NewPortAudioModule creates the module, writing recordings into dir (the
// system temp directory when empty).
func NewPortAudioModule(dir string) *PortAudioModule {
	if dir == "" {
		dir = os.TempDir()
	}
	return &PortAudioModule{dir: dir}
}

func (m *PortAudioModule) NewRecorder(ctx context.Context, opts NativeRecordingOptions) (NativeRecorder, error) {
	// The reference backend encodes WAV only.
	if opts.Container != "wav" && opts.MimeType != "audio/wav" {
		return nil, NewUnsupportedFormatError(opts.Container + opts.MimeType)
	}
	if opts.NumChannels <= 0 || opts.SampleRate <= 0 {
		return nil, NewRecordingError("invalid recorder options")
	}
	return &paRecorder{
		opts: opts,
		path: filepath.Join(m.dir, DefaultFilename(".wav")),
	}, nil
}

func (m *PortAudioModule) NewSound(ctx context.Context, uri string, opts PlaybackOptions) (NativeSound, error) {
	clip, err := decodeAudioFile(stripFileScheme(uri))
	if err != nil {
		return nil, err
	}
	s := &paSound{
		clip:    clip,
		uri:     uri,
		volume:  ClampVolume(opts.Volume),
		rate:    ClampRate(opts.Rate),
		looping: opts.IsLooping,
		muted:   opts.IsMuted,
		playing: opts.ShouldPlay,
		loaded:  true,
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *PortAudioModule) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	return PermissionGranted, nil
}

func (m *PortAudioModule) GetPermissionStatus(ctx context.Context) (PermissionStatus, error) {
	return PermissionGranted, nil
}

func (m *PortAudioModule) SetAudioMode(ctx context.Context, mode AudioMode) error {
	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
	return nil
}

// paRecorder captures the default input device into memory and writes a
// 16-bit WAV on stop.
type paRecorder struct {
	opts      NativeRecordingOptions
	path      string
	stream    *portaudio.Stream
	samples   []float32
	recording bool
	done      bool
	capped    bool
	mu        sync.Mutex
}

func (r *paRecorder) Prepare(ctx context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return NewDeviceError(err.Error())
	}
	stream, err := portaudio.OpenDefaultStream(
		r.opts.NumChannels, 0,
		float64(r.opts.SampleRate), 1024,
		r.capture,
	)
	if err != nil {
		portaudio.Terminate()
		return NewDeviceError(err.Error())
	}
	r.stream = stream
	return nil
}

func (r *paRecorder) capture(in []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording || r.capped {
		return
	}
	r.samples = append(r.samples, in...)
	if r.opts.MaxFileBytes > 0 && int64(len(r.samples))*2 >= r.opts.MaxFileBytes {
		r.capped = true
		r.recording = false
	}
}

func (r *paRecorder) Start(ctx context.Context) error {
	if r.stream == nil {
		return NewRecordingError("recorder not prepared")
	}
	if err := r.stream.Start(); err != nil {
		return NewDeviceError(err.Error())
	}
	r.mu.Lock()
	r.recording = true
	r.mu.Unlock()
	return nil
}

func (r *paRecorder) Pause(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream == nil || r.done {
		return NewRecordingError("recorder not active")
	}
	r.recording = false
	return nil
}

func (r *paRecorder) Resume(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream == nil || r.done {
		return NewRecordingError("recorder not active")
	}
	if !r.capped {
		r.recording = true
	}
	return nil
}

func (r *paRecorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return nil
	}
	r.recording = false
	r.done = true
	samples := r.samples
	r.mu.Unlock()

	if r.stream != nil {
		r.stream.Stop()
		r.stream.Close()
		r.stream = nil
	}
	portaudio.Terminate()

	return r.writeWAV(samples)
}

func (r *paRecorder) writeWAV(samples []float32) error {
	f, err := os.Create(r.path)
	if err != nil {
		return NewRecordingError(err.Error())
	}

	enc := wav.NewEncoder(f, r.opts.SampleRate, 16, r.opts.NumChannels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: r.opts.NumChannels,
			SampleRate:  r.opts.SampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		buf.Data[i] = int(v * 32767)
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return NewRecordingError(err.Error())
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return NewRecordingError(err.Error())
	}
	return f.Close()
}

func (r *paRecorder) Status(ctx context.Context) (RecorderStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := int64(0)
	if r.opts.NumChannels > 0 {
		frames = int64(len(r.samples) / r.opts.NumChannels)
	}
	duration := int64(0)
	if r.opts.SampleRate > 0 {
		duration = frames * 1000 / int64(r.opts.SampleRate)
	}
	return RecorderStatus{
		CanRecord:       r.stream != nil && !r.done,
		IsRecording:     r.recording,
		IsDoneRecording: r.done || r.capped,
		DurationMillis:  duration,
		URI:             r.path,
	}, nil
}

// paSound plays a decoded clip through the default output device. The
// output callback applies volume, mute, loop, and rate (by fractional frame
// stepping, so pitch follows rate).
type paSound struct {
	clip          *pcmClip
	uri           string
	stream        *portaudio.Stream
	pos           float64 // frame index
	playing       bool
	loaded        bool
	looping       bool
	muted         bool
	volume        float64
	rate          float64
	didJustFinish bool
	mu            sync.Mutex
}

func (s *paSound) open() error {
	if err := portaudio.Initialize(); err != nil {
		return NewDeviceError(err.Error())
	}
	stream, err := portaudio.OpenDefaultStream(
		0, s.clip.channels,
		float64(s.clip.sampleRate), 1024,
		s.fill,
	)
	if err != nil {
		portaudio.Terminate()
		return NewDeviceError(err.Error())
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return NewDeviceError(err.Error())
	}
	s.stream = stream
	return nil
}

func (s *paSound) fill(out []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := s.clip.channels
	total := s.clip.frames()
	frames := len(out) / channels

	for f := 0; f < frames; f++ {
		idx := int(s.pos)
		if !s.playing || idx >= total {
			if s.playing && idx >= total {
				if s.looping {
					s.pos = 0
					idx = 0
				} else {
					s.playing = false
					s.didJustFinish = true
				}
			}
			if !s.playing {
				for c := 0; c < channels; c++ {
					out[f*channels+c] = 0
				}
				continue
			}
		}
		gain := float32(s.volume)
		if s.muted {
			gain = 0
		}
		for c := 0; c < channels; c++ {
			out[f*channels+c] = s.clip.samples[idx*channels+c] * gain
		}
		s.pos += s.rate
	}
}

func (s *paSound) Play(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	if int(s.pos) >= s.clip.frames() {
		s.pos = 0
	}
	s.playing = true
	return nil
}

func (s *paSound) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	s.playing = false
	return nil
}

func (s *paSound) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	s.playing = false
	s.pos = 0
	return nil
}

func (s *paSound) Seek(ctx context.Context, positionMillis int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	clamped := ClampPosition(positionMillis, s.clip.durationMillis())
	s.pos = float64(clamped) * float64(s.clip.sampleRate) / 1000
	return nil
}

func (s *paSound) SetVolume(ctx context.Context, volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	s.volume = ClampVolume(volume)
	return nil
}

func (s *paSound) SetRate(ctx context.Context, rate float64, correctPitch bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	// correctPitch is ignored; fractional stepping shifts pitch with rate.
	s.rate = ClampRate(rate)
	return nil
}

func (s *paSound) SetLooping(ctx context.Context, looping bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	s.looping = looping
	return nil
}

func (s *paSound) SetMuted(ctx context.Context, muted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return NewPlaybackError("sound unloaded")
	}
	s.muted = muted
	return nil
}

func (s *paSound) Unload(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.loaded = false
	s.playing = false
	stream := s.stream
	s.stream = nil
	s.mu.Unlock()

	if stream != nil {
		stream.Stop()
		stream.Close()
	}
	portaudio.Terminate()
	return nil
}

func (s *paSound) Status(ctx context.Context) (PlaybackStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position := int64(0)
	if s.clip.sampleRate > 0 {
		position = int64(s.pos) * 1000 / int64(s.clip.sampleRate)
	}
	status := PlaybackStatus{
		IsLoaded:       s.loaded,
		URI:            s.uri,
		DurationMillis: s.clip.durationMillis(),
		PositionMillis: ClampPosition(position, s.clip.durationMillis()),
		Rate:           s.rate,
		Volume:         s.volume,
		IsMuted:        s.muted,
		IsLooping:      s.looping,
		IsPlaying:      s.playing,
		DidJustFinish:  s.didJustFinish,
	}
	// DidJustFinish is a one-shot flag.
	s.didJustFinish = false
	return status, nil
}

var _ NativeModule = (*PortAudioModule)(nil)
var _ NativeRecorder = (*paRecorder)(nil)
var _ NativeSound = (*paSound)(nil)
