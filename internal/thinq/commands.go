package thinq

import "strings"

// Control payload builders. ThinQ control bodies mirror the status shape: the
// zone is addressed with a location block and the desired property values sit
// beside it.

func locatedPayload(loc Location, values map[string]any) map[string]any {
	payload := make(map[string]any, len(values)+1)
	if loc != "" {
		payload["location"] = map[string]any{"locationName": string(loc)}
	}
	for key, value := range values {
		payload[key] = value
	}
	return payload
}

// CookModeWithTemperature builds the preheat command: set a cook mode and a
// target temperature in the requested unit (C or F).
func CookModeWithTemperature(loc Location, mode string, temperature int, unit string) map[string]any {
	tempProp := PropTargetTemperatureF
	if strings.EqualFold(unit, "C") {
		tempProp = PropTargetTemperatureC
	}
	return locatedPayload(loc, map[string]any{
		PropCookMode: mode,
		tempProp:     temperature,
	})
}

// OperationMode builds the start/stop command for an oven cavity.
func OperationMode(loc Location, mode string) map[string]any {
	return locatedPayload(loc, map[string]any{PropOvenOperationMode: mode})
}

// Attribute builds a single-attribute command, such as toggling
// remoteControlEnabled.
func Attribute(loc Location, property string, value any) map[string]any {
	return locatedPayload(loc, map[string]any{property: value})
}
