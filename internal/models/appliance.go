package models

import "strings"

// DeviceDescriptor is the normalized representation of one ThinQ device,
// independent of the vendor's raw field naming. DeviceID and DeviceType are
// always non-empty once constructed; entries that cannot satisfy that are
// dropped during projection.
type DeviceDescriptor struct {
	DeviceID   string `json:"device_id"`
	Alias      string `json:"alias"`
	ModelName  string `json:"model_name,omitempty"`
	DeviceType string `json:"device_type"`
}

// IsOven reports whether the vendor type tag names an oven.
func (d DeviceDescriptor) IsOven() bool {
	return strings.Contains(strings.ToUpper(d.DeviceType), "OVEN")
}

// IsCooktop reports whether the vendor type tag names a cooktop.
func (d DeviceDescriptor) IsCooktop() bool {
	return strings.Contains(strings.ToUpper(d.DeviceType), "COOKTOP")
}

// Label renders the descriptor for device pickers:
// "Kitchen Oven — LWD3063ST (OVEN)".
func (d DeviceDescriptor) Label() string {
	label := d.Alias
	if d.ModelName != "" {
		label += " — " + d.ModelName
	}
	return label + " (" + strings.TrimPrefix(d.DeviceType, "DEVICE_") + ")"
}

// ZoneTimer is the remaining-time readout of a cooktop burner. Values are
// whatever the vendor reported; nil when the model does not expose them.
type ZoneTimer struct {
	Hour   any `json:"hour"`
	Minute any `json:"minute"`
}

// ZoneStatus is the per-burner slice of a multi-zone cooktop status.
type ZoneStatus struct {
	Location      string    `json:"location"`
	State         any       `json:"state"`
	Power         any       `json:"power"`
	RemoteEnabled any       `json:"remote_enabled"`
	Timer         ZoneTimer `json:"timer"`
}

// ApplianceSnapshot is everything the view needs for one request. It is built
// fresh per request and never mutated after construction.
type ApplianceSnapshot struct {
	Devices          []DeviceDescriptor `json:"devices"`
	Selected         *DeviceDescriptor  `json:"selected,omitempty"`
	CookModes        []string           `json:"cook_modes"`
	Locations        []string           `json:"locations"`
	SelectedLocation string             `json:"selected_location,omitempty"`
	Unit             string             `json:"unit"`
	Status           map[string]any     `json:"status"`
	TempHint         string             `json:"temp_hint,omitempty"`
	CooktopZones     []ZoneStatus       `json:"cooktop_zones"`
	RawStatus        any                `json:"raw_status,omitempty"`
}

// EmptySnapshot is the fallback rendered when no device is available or a
// request failed partway through.
func EmptySnapshot() ApplianceSnapshot {
	return ApplianceSnapshot{
		Devices:      []DeviceDescriptor{},
		CookModes:    []string{},
		Locations:    []string{},
		Unit:         "F",
		Status:       map[string]any{},
		CooktopZones: []ZoneStatus{},
	}
}
