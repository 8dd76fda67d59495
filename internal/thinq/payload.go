package thinq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// The ThinQ API is not consistent about envelope shape across endpoints and
// models; the same logical payload may arrive bare or nested under one of
// several key names. The probe orders below are a committed contract: first
// match wins, and the order must not change.

var (
	deviceListKeys = []string{"devices", "deviceList", "items", "result"}
	profileKeys    = []string{"profile", "result", "modelJson", "modelJsonV2", "data"}
	statusKeys     = []string{"state", "result", "data", "status"}
)

// ErrUnexpectedProfile reports a profile payload that is neither a recognized
// envelope nor a mapping at all. This is the one shape problem treated as a
// hard failure rather than tolerated.
var ErrUnexpectedProfile = errors.New("unexpected profile payload")

// firstPresent returns the first non-nil value found probing keys in order.
func firstPresent(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := m[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

// ExtractDeviceList reduces a list-devices payload to the bare device slice.
// A bare sequence passes through; an envelope is probed for the first key
// holding a sequence. Anything else yields an empty slice, never an error.
func ExtractDeviceList(payload any) []any {
	switch v := payload.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range deviceListKeys {
			if list, ok := v[key].([]any); ok {
				return list
			}
		}
	}
	return []any{}
}

// ExtractProfile reduces a get-profile payload to the profile mapping. When no
// known envelope key holds a mapping the input mapping itself is assumed to be
// the profile. Non-mapping input is the hard-failure case.
func ExtractProfile(payload any) (map[string]any, error) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, ErrUnexpectedProfile
	}
	for _, key := range profileKeys {
		if inner, ok := m[key].(map[string]any); ok {
			return inner, nil
		}
	}
	return m, nil
}

// ExtractStatus unwraps a get-status payload. The first known envelope key
// with a non-nil value wins; the value may itself be a mapping or a sequence
// (per-location status blocks). Unrecognized shapes pass through unchanged.
func ExtractStatus(payload any) any {
	if m, ok := payload.(map[string]any); ok {
		if value := firstPresent(m, statusKeys...); value != nil {
			return value
		}
	}
	return payload
}

// AsText coerces a loosely typed vendor value to its display string. JSON
// numbers arrive as float64, so integral values are rendered without a
// fractional part.
func AsText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
