package thinq

import "thinqkitchen/internal/models"

// Field aliases seen across ThinQ payload generations, probed in priority
// order. Like the envelope keys, the order is part of the contract.
var (
	deviceIDKeys   = []string{"deviceId", "device_id", "id", "deviceID"}
	deviceTypeKeys = []string{"deviceType", "device_type", "type"}
	modelNameKeys  = []string{"modelName", "model_name"}
	aliasKeys      = []string{"alias", "name"}
)

// flattenDeviceEntry merges a nested deviceInfo block with identity fields the
// vendor sometimes leaves on the outer entry. Inner fields win; only id-like
// keys absent from the inner block are copied in.
func flattenDeviceEntry(entry map[string]any) map[string]any {
	info, ok := entry["deviceInfo"].(map[string]any)
	if !ok {
		return entry
	}
	merged := make(map[string]any, len(info)+1)
	for key, value := range info {
		merged[key] = value
	}
	for _, key := range deviceIDKeys {
		if value, ok := entry[key]; ok {
			if _, present := merged[key]; !present {
				merged[key] = value
			}
		}
	}
	return merged
}

// ToDescriptor projects one raw device entry into a DeviceDescriptor. Entries
// without a resolvable id or type report ok=false and are simply excluded; a
// malformed entry never aborts the whole list.
func ToDescriptor(entry map[string]any) (models.DeviceDescriptor, bool) {
	entry = flattenDeviceEntry(entry)

	id := AsText(firstPresent(entry, deviceIDKeys...))
	deviceType := AsText(firstPresent(entry, deviceTypeKeys...))
	if id == "" || deviceType == "" {
		return models.DeviceDescriptor{}, false
	}

	model := AsText(firstPresent(entry, modelNameKeys...))
	alias := AsText(firstPresent(entry, aliasKeys...))
	if alias == "" {
		alias = model
	}
	if alias == "" {
		alias = id
	}
	return models.DeviceDescriptor{
		DeviceID:   id,
		Alias:      alias,
		ModelName:  model,
		DeviceType: deviceType,
	}, true
}

// ProjectDescriptors applies ToDescriptor to each raw entry, silently
// filtering out entries that are not mappings or fail projection.
func ProjectDescriptors(entries []any) []models.DeviceDescriptor {
	descriptors := make([]models.DeviceDescriptor, 0, len(entries))
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if descriptor, ok := ToDescriptor(entry); ok {
			descriptors = append(descriptors, descriptor)
		}
	}
	return descriptors
}

// PickDevice selects the device with the requested id, falling back to the
// first device when no id was requested or nothing matched. An empty list
// yields nil.
func PickDevice(devices []models.DeviceDescriptor, requestedID string) *models.DeviceDescriptor {
	if len(devices) == 0 {
		return nil
	}
	if requestedID != "" {
		for i := range devices {
			if devices[i].DeviceID == requestedID {
				return &devices[i]
			}
		}
	}
	return &devices[0]
}
