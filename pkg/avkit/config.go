package avkit

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default configuration values.
const (
	DefaultSampleRate       = SampleRate44K
	DefaultBitRate          = BitRate128K
	DefaultVolume           = 1.0
	DefaultRate             = 1.0
	DefaultProgressInterval = 500 * time.Millisecond
	DefaultRecordingPoll    = 500 * time.Millisecond
)

// RecordingConfig is the immutable configuration for one recording take.
type RecordingConfig struct {
	Quality           Quality
	Format            Format
	Channels          ChannelCount
	BitRate           int
	SampleRate        int
	Extension         string
	MaxDurationMillis int64 // 0 means unlimited
}

// NewRecordingConfig returns a config with the documented defaults, with
// AVKIT_* environment overrides applied (a .env file is honored if present).
func NewRecordingConfig() *RecordingConfig {
	c := &RecordingConfig{
		Quality:    QualityStandard,
		Format:     FormatWAV,
		Channels:   Mono,
		BitRate:    DefaultBitRate,
		SampleRate: DefaultSampleRate,
	}
	c.Extension = c.Format.Extension()
	c.loadFromEnv()
	return c
}

// ConfigForQuality bundles encoding parameters for a quality tier.
func ConfigForQuality(q Quality) *RecordingConfig {
	c := NewRecordingConfig()
	c.Quality = q
	switch q {
	case QualityLow:
		c.SampleRate = SampleRate16K
		c.BitRate = BitRate64K
		c.Channels = Mono
	case QualityHigh:
		c.SampleRate = SampleRate48K
		c.BitRate = BitRate256K
		c.Channels = Stereo
	default:
		c.SampleRate = DefaultSampleRate
		c.BitRate = DefaultBitRate
	}
	return c
}

func (c *RecordingConfig) loadFromEnv() {
	// Load .env if exists
	_ = godotenv.Load()

	if format := os.Getenv("AVKIT_FORMAT"); format != "" {
		c.Format = Format(format)
		c.Extension = c.Format.Extension()
	}
	if rate := os.Getenv("AVKIT_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil {
			c.SampleRate = val
		}
	}
	if bitRate := os.Getenv("AVKIT_BIT_RATE"); bitRate != "" {
		if val, err := strconv.Atoi(bitRate); err == nil {
			c.BitRate = val
		}
	}
	if channels := os.Getenv("AVKIT_CHANNELS"); channels != "" {
		if val, err := strconv.Atoi(channels); err == nil {
			c.Channels = ChannelCount(val)
		}
	}
	if maxMillis := os.Getenv("AVKIT_MAX_DURATION_MILLIS"); maxMillis != "" {
		if val, err := strconv.ParseInt(maxMillis, 10, 64); err == nil {
			c.MaxDurationMillis = val
		}
	}
}

// Validate returns list of issues
func (c *RecordingConfig) Validate() []string {
	issues := []string{}

	switch c.Format {
	case FormatAAC, FormatWAV, FormatMP3, FormatOGG:
	default:
		issues = append(issues, fmt.Sprintf("unsupported format: %s", c.Format))
	}
	if c.Channels != Mono && c.Channels != Stereo {
		issues = append(issues, fmt.Sprintf("invalid channel count: %d", c.Channels))
	}
	if c.SampleRate <= 0 {
		issues = append(issues, fmt.Sprintf("invalid sample rate: %d", c.SampleRate))
	}
	if c.BitRate <= 0 {
		issues = append(issues, fmt.Sprintf("invalid bit rate: %d", c.BitRate))
	}
	if c.MaxDurationMillis < 0 {
		issues = append(issues, "max duration must not be negative")
	}
	return issues
}

// NativeRecordingOptions is the platform-shaped configuration handed to the
// native module when allocating a recorder handle.
type NativeRecordingOptions struct {
	Encoder      string
	Container    string
	MimeType     string
	NumChannels  int
	BitRate      int
	SampleRate   int
	MaxFileBytes int64 // 0 means unlimited
	Extension    string
}

// NativeOptions maps the config onto the given platform family: AAC maps to
// the AAC encoder in an MPEG-4 container on mobile targets and to a generic
// MIME type on web targets; the optional max duration becomes a byte cap at
// the configured bit rate.
func (c *RecordingConfig) NativeOptions(p Platform) NativeRecordingOptions {
	opts := NativeRecordingOptions{
		NumChannels: int(c.Channels),
		BitRate:     c.BitRate,
		SampleRate:  c.SampleRate,
		Extension:   c.Extension,
	}
	if opts.Extension == "" {
		opts.Extension = c.Format.Extension()
	}
	if c.MaxDurationMillis > 0 {
		opts.MaxFileBytes = EstimateFileSize(c.MaxDurationMillis, int64(c.BitRate))
	}

	switch p {
	case PlatformWeb:
		switch c.Format {
		case FormatAAC:
			opts.MimeType = "audio/mp4"
		case FormatWAV:
			opts.MimeType = "audio/wav"
		case FormatMP3:
			opts.MimeType = "audio/mpeg"
		case FormatOGG:
			opts.MimeType = "audio/ogg"
		}
	default:
		switch c.Format {
		case FormatAAC:
			opts.Encoder = "aac"
			opts.Container = "mpeg4"
		case FormatWAV:
			opts.Encoder = "pcm16"
			opts.Container = "wav"
		case FormatMP3:
			opts.Encoder = "mp3"
			opts.Container = "mp3"
		case FormatOGG:
			opts.Encoder = "vorbis"
			opts.Container = "ogg"
		}
	}
	return opts
}

// PlaybackOptions is the mutable playback configuration for one loaded
// source. Setter operations on the Player mirror accepted values back here.
type PlaybackOptions struct {
	ShouldPlay       bool
	Volume           float64
	IsLooping        bool
	IsMuted          bool
	Rate             float64
	ProgressInterval time.Duration
}

// NewPlaybackOptions returns options with the documented defaults, with
// AVKIT_* environment overrides applied.
func NewPlaybackOptions() *PlaybackOptions {
	o := &PlaybackOptions{
		Volume:           DefaultVolume,
		Rate:             DefaultRate,
		ProgressInterval: DefaultProgressInterval,
	}
	o.loadFromEnv()
	return o
}

func (o *PlaybackOptions) loadFromEnv() {
	_ = godotenv.Load()

	if volume := os.Getenv("AVKIT_VOLUME"); volume != "" {
		if val, err := strconv.ParseFloat(volume, 64); err == nil {
			o.Volume = ClampVolume(val)
		}
	}
	if rate := os.Getenv("AVKIT_RATE"); rate != "" {
		if val, err := strconv.ParseFloat(rate, 64); err == nil {
			o.Rate = ClampRate(val)
		}
	}
	if interval := os.Getenv("AVKIT_PROGRESS_INTERVAL_MILLIS"); interval != "" {
		if val, err := strconv.Atoi(interval); err == nil && val > 0 {
			o.ProgressInterval = time.Duration(val) * time.Millisecond
		}
	}
	o.IsLooping = os.Getenv("AVKIT_LOOPING") == "true"
	o.IsMuted = os.Getenv("AVKIT_MUTED") == "true"
}

// Validate returns list of issues
func (o *PlaybackOptions) Validate() []string {
	issues := []string{}
	if o.Volume < MinVolume || o.Volume > MaxVolume {
		issues = append(issues, fmt.Sprintf("volume out of range [0,1]: %v", o.Volume))
	}
	if o.Rate < MinRate || o.Rate > MaxRate {
		issues = append(issues, fmt.Sprintf("rate out of range [0.5,2.0]: %v", o.Rate))
	}
	if o.ProgressInterval <= 0 {
		issues = append(issues, "progress interval must be positive")
	}
	return issues
}
