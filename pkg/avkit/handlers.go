package avkit

// Factory functions for common handlers

// CreateLoggingStatusHandler returns a playback status handler that logs
// each poll tick. Verbose includes the full snapshot.
func CreateLoggingStatusHandler(verbose bool) PlaybackStatusHandler {
	logger := GetGlobalLogger().WithComponent("StatusHandler")
	return func(status PlaybackStatus) {
		if verbose {
			logger.Infof("status: playing=%t position=%s/%s rate=%.2f volume=%.2f buffering=%t",
				status.IsPlaying,
				FormatDuration(status.PositionMillis),
				FormatDuration(status.DurationMillis),
				status.Rate, status.Volume, status.IsBuffering)
			return
		}
		logger.Infof("position %s / %s", FormatDuration(status.PositionMillis), FormatDuration(status.DurationMillis))
	}
}

// CreateProgressHandler returns a playback status handler that reports
// progress in [0, 1] to the callback.
func CreateProgressHandler(callback func(progress float64)) PlaybackStatusHandler {
	return func(status PlaybackStatus) {
		callback(ProgressPercent(status.PositionMillis, status.DurationMillis) / 100)
	}
}

// CreateRecordingDurationHandler returns a recording status handler that
// reports the running duration in milliseconds to the callback.
func CreateRecordingDurationHandler(callback func(durationMillis int64)) RecordingStatusHandler {
	return func(status RecorderStatus) {
		callback(status.DurationMillis)
	}
}

// CreateErrorLoggingHandler returns an error handler that logs through the
// global logger under the given component name.
func CreateErrorLoggingHandler(component string) ErrorHandler {
	logger := GetGlobalLogger().WithComponent(component)
	return func(err *Error) {
		logger.LogError(err)
	}
}
