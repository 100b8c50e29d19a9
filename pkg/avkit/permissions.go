package avkit

import "context"

// RequestRecordingPermission prompts for recording permission through the
// native module. Native errors are swallowed: a failed request reads as
// denied, since the caller cannot record either way.
func RequestRecordingPermission(ctx context.Context, native NativeModule) PermissionStatus {
	status, err := native.RequestPermission(ctx)
	if err != nil {
		GetGlobalLogger().WithComponent("Permissions").
			WithError(err).Debug("permission request failed")
		return PermissionDenied
	}
	return status
}

// GetRecordingPermissionStatus queries the current permission without
// prompting. Native errors are swallowed into undetermined; this is polled
// routinely and must not throw.
func GetRecordingPermissionStatus(ctx context.Context, native NativeModule) PermissionStatus {
	status, err := native.GetPermissionStatus(ctx)
	if err != nil {
		GetGlobalLogger().WithComponent("Permissions").
			WithError(err).Debug("permission query failed")
		return PermissionUndetermined
	}
	return status
}
