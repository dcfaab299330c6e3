package httpapi

import "context"

type contextKey string

const deviceIDContextKey contextKey = "device_id"

func withDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey, deviceID)
}

// deviceIDFromContext returns the X-Device-ID the caller sent, or "".
func deviceIDFromContext(ctx context.Context) string {
	deviceID, _ := ctx.Value(deviceIDContextKey).(string)
	return deviceID
}
