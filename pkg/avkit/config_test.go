package avkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordingConfigDefaults(t *testing.T) {
	c := NewRecordingConfig()
	assert.Equal(t, QualityStandard, c.Quality)
	assert.Equal(t, FormatWAV, c.Format)
	assert.Equal(t, Mono, c.Channels)
	assert.Equal(t, DefaultSampleRate, c.SampleRate)
	assert.Equal(t, DefaultBitRate, c.BitRate)
	assert.Equal(t, ".wav", c.Extension)
	assert.Zero(t, c.MaxDurationMillis)
	assert.Empty(t, c.Validate())
}

func TestRecordingConfigEnvOverrides(t *testing.T) {
	t.Setenv("AVKIT_FORMAT", "mp3")
	t.Setenv("AVKIT_SAMPLE_RATE", "22050")
	t.Setenv("AVKIT_BIT_RATE", "192000")
	t.Setenv("AVKIT_CHANNELS", "2")
	t.Setenv("AVKIT_MAX_DURATION_MILLIS", "30000")

	c := NewRecordingConfig()
	assert.Equal(t, FormatMP3, c.Format)
	assert.Equal(t, ".mp3", c.Extension)
	assert.Equal(t, SampleRate22K, c.SampleRate)
	assert.Equal(t, BitRate192K, c.BitRate)
	assert.Equal(t, Stereo, c.Channels)
	assert.Equal(t, int64(30000), c.MaxDurationMillis)
}

func TestRecordingConfigEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("AVKIT_SAMPLE_RATE", "not-a-number")
	t.Setenv("AVKIT_BIT_RATE", "")

	c := NewRecordingConfig()
	assert.Equal(t, DefaultSampleRate, c.SampleRate)
	assert.Equal(t, DefaultBitRate, c.BitRate)
}

func TestConfigForQuality(t *testing.T) {
	low := ConfigForQuality(QualityLow)
	assert.Equal(t, SampleRate16K, low.SampleRate)
	assert.Equal(t, BitRate64K, low.BitRate)
	assert.Equal(t, Mono, low.Channels)

	std := ConfigForQuality(QualityStandard)
	assert.Equal(t, DefaultSampleRate, std.SampleRate)
	assert.Equal(t, DefaultBitRate, std.BitRate)

	high := ConfigForQuality(QualityHigh)
	assert.Equal(t, SampleRate48K, high.SampleRate)
	assert.Equal(t, BitRate256K, high.BitRate)
	assert.Equal(t, Stereo, high.Channels)
}

func TestRecordingConfigValidate(t *testing.T) {
	c := NewRecordingConfig()
	c.Format = Format("flac")
	c.Channels = 7
	c.SampleRate = 0
	c.BitRate = -1
	c.MaxDurationMillis = -10

	issues := c.Validate()
	require.Len(t, issues, 5)
}

func TestNativeOptionsMobileMapping(t *testing.T) {
	c := NewRecordingConfig()
	c.Format = FormatAAC
	c.Extension = c.Format.Extension()

	opts := c.NativeOptions(PlatformMobile)
	assert.Equal(t, "aac", opts.Encoder)
	assert.Equal(t, "mpeg4", opts.Container)
	assert.Empty(t, opts.MimeType)
	assert.Equal(t, ".m4a", opts.Extension)
	assert.Equal(t, 1, opts.NumChannels)
	assert.Equal(t, DefaultSampleRate, opts.SampleRate)
	assert.Equal(t, DefaultBitRate, opts.BitRate)

	c.Format = FormatWAV
	c.Extension = c.Format.Extension()
	opts = c.NativeOptions(PlatformMobile)
	assert.Equal(t, "pcm16", opts.Encoder)
	assert.Equal(t, "wav", opts.Container)
}

func TestNativeOptionsWebMapping(t *testing.T) {
	c := NewRecordingConfig()
	for format, mime := range map[Format]string{
		FormatAAC: "audio/mp4",
		FormatWAV: "audio/wav",
		FormatMP3: "audio/mpeg",
		FormatOGG: "audio/ogg",
	} {
		c.Format = format
		c.Extension = format.Extension()
		opts := c.NativeOptions(PlatformWeb)
		assert.Equal(t, mime, opts.MimeType, "format %s", format)
		assert.Empty(t, opts.Encoder)
		assert.Empty(t, opts.Container)
	}
}

func TestNativeOptionsMaxDurationBecomesByteCap(t *testing.T) {
	c := NewRecordingConfig()
	c.MaxDurationMillis = 60000

	opts := c.NativeOptions(PlatformMobile)
	assert.Equal(t, EstimateFileSize(60000, int64(c.BitRate)), opts.MaxFileBytes)

	c.MaxDurationMillis = 0
	opts = c.NativeOptions(PlatformMobile)
	assert.Zero(t, opts.MaxFileBytes)
}

func TestNewPlaybackOptionsDefaults(t *testing.T) {
	o := NewPlaybackOptions()
	assert.Equal(t, DefaultVolume, o.Volume)
	assert.Equal(t, DefaultRate, o.Rate)
	assert.Equal(t, DefaultProgressInterval, o.ProgressInterval)
	assert.False(t, o.IsLooping)
	assert.False(t, o.IsMuted)
	assert.Empty(t, o.Validate())
}

func TestPlaybackOptionsEnvOverrides(t *testing.T) {
	t.Setenv("AVKIT_VOLUME", "2.5")
	t.Setenv("AVKIT_RATE", "0.1")
	t.Setenv("AVKIT_PROGRESS_INTERVAL_MILLIS", "250")
	t.Setenv("AVKIT_LOOPING", "true")
	t.Setenv("AVKIT_MUTED", "true")

	o := NewPlaybackOptions()
	assert.Equal(t, MaxVolume, o.Volume, "env volume is clamped")
	assert.Equal(t, MinRate, o.Rate, "env rate is clamped")
	assert.Equal(t, 250*time.Millisecond, o.ProgressInterval)
	assert.True(t, o.IsLooping)
	assert.True(t, o.IsMuted)
}

func TestPlaybackOptionsValidate(t *testing.T) {
	o := NewPlaybackOptions()
	o.Volume = 1.2
	o.Rate = 0.2
	o.ProgressInterval = 0

	issues := o.Validate()
	require.Len(t, issues, 3)
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, ".m4a", FormatAAC.Extension())
	assert.Equal(t, ".wav", FormatWAV.Extension())
	assert.Equal(t, ".mp3", FormatMP3.Extension())
	assert.Equal(t, ".ogg", FormatOGG.Extension())
	assert.Empty(t, Format("flac").Extension())
}
