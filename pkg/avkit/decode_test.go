package avkit

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSineWAV writes a mono 16-bit WAV with a short sine burst.
func writeSineWAV(t *testing.T, sampleRate, frames int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	data := make([]int, frames)
	for i := range data {
		data[i] = int(0.5 * 32767 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
	return path
}

func TestDecodeWAV(t *testing.T) {
	path := writeSineWAV(t, 44100, 4410)

	clip, err := decodeAudioFile(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, clip.sampleRate)
	assert.Equal(t, 1, clip.channels)
	assert.Equal(t, 4410, clip.frames())
	assert.Equal(t, int64(100), clip.durationMillis())

	for _, s := range clip.samples {
		assert.LessOrEqual(t, float64(s), 1.0)
		assert.GreaterOrEqual(t, float64(s), -1.0)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := decodeAudioFile("/nonexistent/tone.wav")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidURI))
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))

	_, err := decodeAudioFile(path)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnsupportedFormat))
}

func TestDecodeCorruptWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFFgarbage"), 0o644))

	_, err := decodeAudioFile(path)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnsupportedFormat))
}

func TestPCMClipMath(t *testing.T) {
	clip := &pcmClip{samples: make([]float32, 88200), sampleRate: 44100, channels: 2}
	assert.Equal(t, 44100, clip.frames())
	assert.Equal(t, int64(1000), clip.durationMillis())

	empty := &pcmClip{}
	assert.Zero(t, empty.frames())
	assert.Zero(t, empty.durationMillis())
}
