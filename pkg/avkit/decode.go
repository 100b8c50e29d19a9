package avkit

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/go-audio/wav"
)

// pcmClip is a fully decoded source: interleaved float32 samples in [-1, 1].
type pcmClip struct {
	samples    []float32
	sampleRate int
	channels   int
}

func (c *pcmClip) frames() int {
	if c.channels == 0 {
		return 0
	}
	return len(c.samples) / c.channels
}

func (c *pcmClip) durationMillis() int64 {
	if c.sampleRate == 0 {
		return 0
	}
	return int64(c.frames()) * 1000 / int64(c.sampleRate)
}

// decodeAudioFile decodes a WAV, MP3, or OGG file into PCM.
func decodeAudioFile(path string) (*pcmClip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewInvalidURIError(path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	case ".ogg":
		return decodeOGG(f)
	default:
		return nil, NewUnsupportedFormatError(filepath.Ext(path))
	}
}

func decodeWAV(f *os.File) (*pcmClip, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, NewUnsupportedFormatError("wav")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, WrapError(err, ErrCodeUnsupportedFormat)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}
	return &pcmClip{
		samples:    samples,
		sampleRate: buf.Format.SampleRate,
		channels:   buf.Format.NumChannels,
	}, nil
}

func decodeMP3(f *os.File) (*pcmClip, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, WrapError(err, ErrCodeUnsupportedFormat)
	}

	// go-mp3 yields 16-bit little-endian PCM, stereo interleaved.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, WrapError(err, ErrCodeUnsupportedFormat)
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}
	return &pcmClip{
		samples:    samples,
		sampleRate: dec.SampleRate(),
		channels:   2,
	}, nil
}

func decodeOGG(f *os.File) (*pcmClip, error) {
	samples, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, WrapError(err, ErrCodeUnsupportedFormat)
	}
	return &pcmClip{
		samples:    samples,
		sampleRate: format.SampleRate,
		channels:   format.Channels,
	}, nil
}
