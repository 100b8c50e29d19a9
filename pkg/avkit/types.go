package avkit

// RecordingState enum
type RecordingState string

const (
	RecordingIdle      RecordingState = "idle"
	RecordingPreparing RecordingState = "preparing"
	RecordingActive    RecordingState = "recording"
	RecordingPaused    RecordingState = "paused"
	RecordingStopping  RecordingState = "stopping"
	RecordingStopped   RecordingState = "stopped"
	RecordingError     RecordingState = "error"
)

// PlaybackState enum
type PlaybackState string

const (
	PlaybackIdle      PlaybackState = "idle"
	PlaybackLoading   PlaybackState = "loading"
	PlaybackReady     PlaybackState = "ready"
	PlaybackPlaying   PlaybackState = "playing"
	PlaybackPaused    PlaybackState = "paused"
	PlaybackStopped   PlaybackState = "stopped"
	PlaybackCompleted PlaybackState = "completed"
	PlaybackError     PlaybackState = "error"
)

// PermissionStatus enum
type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

// Quality tiers select a bundled set of encoding parameters.
type Quality string

const (
	QualityLow      Quality = "low"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

// Format identifies the encoding format of a recording or source.
type Format string

const (
	FormatAAC Format = "aac"
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
	FormatOGG Format = "ogg"
)

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatAAC:
		return ".m4a"
	case FormatWAV:
		return ".wav"
	case FormatMP3:
		return ".mp3"
	case FormatOGG:
		return ".ogg"
	default:
		return ""
	}
}

// ChannelCount enum
type ChannelCount int

const (
	Mono   ChannelCount = 1
	Stereo ChannelCount = 2
)

// Platform selects the native option mapping for RecordingConfig.
type Platform string

const (
	PlatformMobile Platform = "mobile"
	PlatformWeb    Platform = "web"
)

// Common sample rates in Hz.
const (
	SampleRate8K  = 8000
	SampleRate16K = 16000
	SampleRate22K = 22050
	SampleRate44K = 44100
	SampleRate48K = 48000
)

// Common bit rates in bits per second.
const (
	BitRate64K  = 64000
	BitRate128K = 128000
	BitRate192K = 192000
	BitRate256K = 256000
)

// RecorderStatus is the raw status snapshot reported by a native recorder
// handle.
type RecorderStatus struct {
	CanRecord       bool
	IsRecording     bool
	IsDoneRecording bool
	DurationMillis  int64
	URI             string
}

// PlaybackStatus is the raw status snapshot reported by a native sound
// handle.
type PlaybackStatus struct {
	IsLoaded       bool
	URI            string
	DurationMillis int64
	PositionMillis int64
	Rate           float64
	Volume         float64
	IsMuted        bool
	IsLooping      bool
	IsPlaying      bool
	IsBuffering    bool
	DidJustFinish  bool
}

// AudioMode configures the module-level audio session.
type AudioMode struct {
	AllowRecording          bool
	PlaysInSilentMode       bool
	StaysActiveInBackground bool
}

// Handler types
type RecordingStatusHandler func(RecorderStatus)
type PlaybackStatusHandler func(PlaybackStatus)
type CompletionHandler func(uri string)
type ErrorHandler func(*Error)
