package avkit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Volume and rate bounds enforced across the SDK.
const (
	MinVolume = 0.0
	MaxVolume = 1.0
	MinRate   = 0.5
	MaxRate   = 2.0
)

// FormatDuration renders a millisecond duration as "MM:SS", switching to
// "HH:MM:SS" once the duration reaches one hour.
func FormatDuration(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	totalSeconds := millis / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatDurationLong always renders "HH:MM:SS".
func FormatDurationLong(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	totalSeconds := millis / 1000
	return fmt.Sprintf("%02d:%02d:%02d", totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

// FormatDurationMillis renders "MM:SS:mmm" with the millisecond remainder.
func FormatDurationMillis(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	totalSeconds := millis / 1000
	return fmt.Sprintf("%02d:%02d:%03d", totalSeconds/60, totalSeconds%60, millis%1000)
}

// EstimateFileSize estimates the encoded size in bytes of a recording of the
// given duration at the given bit rate, floored.
func EstimateFileSize(durationMillis, bitRate int64) int64 {
	if durationMillis <= 0 || bitRate <= 0 {
		return 0
	}
	return bitRate * durationMillis / 8000
}

// ProgressPercent returns position/duration as a percentage clamped to
// [0, 100]. A zero duration yields 0.
func ProgressPercent(positionMillis, durationMillis int64) float64 {
	if durationMillis <= 0 {
		return 0
	}
	pct := float64(positionMillis) / float64(durationMillis) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ClampVolume clamps a volume into [0, 1].
func ClampVolume(v float64) float64 {
	if v < MinVolume {
		return MinVolume
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}

// ClampRate clamps a playback rate into [0.5, 2.0].
func ClampRate(r float64) float64 {
	if r < MinRate {
		return MinRate
	}
	if r > MaxRate {
		return MaxRate
	}
	return r
}

// ClampPosition clamps a position into [0, durationMillis].
func ClampPosition(positionMillis, durationMillis int64) int64 {
	if positionMillis < 0 {
		return 0
	}
	if durationMillis >= 0 && positionMillis > durationMillis {
		return durationMillis
	}
	return positionMillis
}

// DefaultFilename builds a timestamped recording filename with the given
// extension (dot included), e.g. "20260823_151004_1a2b3c4d.wav".
func DefaultFilename(ext string) string {
	stamp := time.Now().Format("20060102_150405")
	short := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s%s", stamp, short, ext)
}
