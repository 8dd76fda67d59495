package thinq

// Property names as they appear in ThinQ Connect profiles and statuses.
const (
	PropCookMode             = "cookMode"
	PropOvenOperationMode    = "ovenOperationMode"
	PropOperationMode        = "operationMode"
	PropCurrentState         = "currentState"
	PropTargetTemperatureC   = "targetTemperatureC"
	PropTargetTemperatureF   = "targetTemperatureF"
	PropTemperatureUnit      = "temperatureUnit"
	PropRemoteControlEnabled = "remoteControlEnabled"
	PropPowerLevel           = "powerLevel"
	PropRemainHour           = "remainHour"
	PropRemainMinute         = "remainMinute"
)

// Profile property specs carry their constraints under these keys.
const (
	propertyReadable = "readable"
	propertyWritable = "writable"
)
