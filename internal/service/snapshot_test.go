package service

import (
	"context"
	"testing"

	"thinqkitchen/internal/config"
	"thinqkitchen/internal/logger"
)

// fakeSession scripts the vendor API for service tests and records every
// control payload it receives.
type fakeSession struct {
	listPayload    any
	listErr        error
	profilePayload any
	profileErr     error
	statusPayload  any
	statusErr      error
	controlErr     error

	statusCalls  int
	controlCalls []map[string]any
	closed       bool
}

func (f *fakeSession) GetDeviceList(ctx context.Context) (any, error) {
	return f.listPayload, f.listErr
}

func (f *fakeSession) GetDeviceProfile(ctx context.Context, deviceID string) (any, error) {
	return f.profilePayload, f.profileErr
}

func (f *fakeSession) GetDeviceStatus(ctx context.Context, deviceID string) (any, error) {
	f.statusCalls++
	return f.statusPayload, f.statusErr
}

func (f *fakeSession) ControlDevice(ctx context.Context, deviceID string, payload map[string]any) error {
	f.controlCalls = append(f.controlCalls, payload)
	return f.controlErr
}

func (f *fakeSession) Close() { f.closed = true }

func factoryFor(f *fakeSession) SessionFactory {
	return func(cfg config.Config) VendorSession { return f }
}

func testConfig() config.Config {
	return config.Config{AccessToken: "tok", ClientID: "cid", Country: "US"}
}

// One oven whose id lives outside the deviceInfo block, with a single OVEN
// cavity exposing cook modes and a fahrenheit range.
func ovenListPayload() any {
	return map[string]any{"response": "ignored", "devices": []any{
		map[string]any{
			"deviceId": "o1",
			"deviceInfo": map[string]any{
				"deviceType": "DEVICE_OVEN",
				"alias":      "Main Oven",
				"modelName":  "LWD3063ST",
			},
		},
	}}
}

func ovenProfilePayload() any {
	return map[string]any{"profile": map[string]any{
		"property": []any{
			map[string]any{
				"location": map[string]any{"locationName": "OVEN"},
				"cook": map[string]any{
					"cookMode": map[string]any{"writable": []any{"BAKE", "ROAST"}},
				},
				"temperature": map[string]any{
					"targetTemperatureF": map[string]any{
						"writable": map[string]any{"min": float64(170), "max": float64(550)},
					},
				},
			},
		},
	}}
}

func ovenStatusPayload(remoteEnabled bool) any {
	return map[string]any{"state": []any{
		map[string]any{
			"location":             map[string]any{"locationName": "OVEN"},
			"cook":                 map[string]any{"cookMode": "BAKE"},
			"temperature":          map[string]any{"targetTemperatureF": float64(350), "temperatureUnit": "F"},
			"currentState":         "PREHEATING",
			"ovenOperationMode":    "START",
			"remoteControlEnabled": remoteEnabled,
		},
	}}
}

func TestBuild_OvenSnapshot(t *testing.T) {
	session := &fakeSession{
		listPayload:    ovenListPayload(),
		profilePayload: ovenProfilePayload(),
		statusPayload:  ovenStatusPayload(true),
	}
	svc := NewSnapshotService(factoryFor(session), logger.Nop())

	snap, err := svc.Build(context.Background(), testConfig(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.closed {
		t.Fatalf("session must be closed after the request")
	}
	if snap.Selected == nil || snap.Selected.DeviceID != "o1" {
		t.Fatalf("selected = %+v", snap.Selected)
	}
	// No location requested: the primary cavity is picked and reported.
	if snap.SelectedLocation != "OVEN" {
		t.Fatalf("selected location = %q, want OVEN", snap.SelectedLocation)
	}
	if snap.Unit != "F" {
		t.Fatalf("unit = %q", snap.Unit)
	}
	if snap.Status["state"] != "PREHEATING" || snap.Status["target_f"] != float64(350) {
		t.Fatalf("status view = %#v", snap.Status)
	}
	if snap.TempHint != "170-550F" {
		t.Fatalf("temp hint = %q", snap.TempHint)
	}
	if len(snap.CookModes) != 2 || snap.CookModes[0] != "BAKE" {
		t.Fatalf("cook modes = %v", snap.CookModes)
	}
	if len(snap.Locations) != 1 || snap.Locations[0] != "OVEN" {
		t.Fatalf("locations = %v", snap.Locations)
	}
}

func TestBuild_NoDevices(t *testing.T) {
	session := &fakeSession{listPayload: map[string]any{"devices": []any{}}}
	svc := NewSnapshotService(factoryFor(session), logger.Nop())

	snap, err := svc.Build(context.Background(), testConfig(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Selected != nil || len(snap.Devices) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if snap.Unit != "F" {
		t.Fatalf("empty snapshot unit = %q", snap.Unit)
	}
	if !session.closed {
		t.Fatalf("session must be closed")
	}
}

func TestBuild_UnknownDeviceIDFallsBackToFirst(t *testing.T) {
	session := &fakeSession{
		listPayload:    ovenListPayload(),
		profilePayload: ovenProfilePayload(),
		statusPayload:  ovenStatusPayload(true),
	}
	svc := NewSnapshotService(factoryFor(session), logger.Nop())

	snap, err := svc.Build(context.Background(), testConfig(), "does-not-exist", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Selected == nil || snap.Selected.DeviceID != "o1" {
		t.Fatalf("expected first-device fallback, got %+v", snap.Selected)
	}
}

func TestBuild_CooktopZones(t *testing.T) {
	session := &fakeSession{
		listPayload: []any{
			map[string]any{"deviceId": "c1", "deviceType": "DEVICE_COOKTOP", "alias": "Cooktop"},
		},
		profilePayload: map[string]any{"profile": map[string]any{
			"property": []any{
				map[string]any{
					"location":   map[string]any{"locationName": "LEFT_FRONT"},
					"powerLevel": map[string]any{"readable": map[string]any{"min": float64(0), "max": float64(9)}},
				},
				map[string]any{
					"location":   map[string]any{"locationName": "RIGHT_FRONT"},
					"powerLevel": map[string]any{"readable": map[string]any{"min": float64(0), "max": float64(9)}},
				},
			},
		}},
		statusPayload: map[string]any{"state": []any{
			map[string]any{
				"location":             map[string]any{"locationName": "LEFT_FRONT"},
				"currentState":         "COOKING",
				"powerLevel":           float64(6),
				"remoteControlEnabled": true,
				"timer":                map[string]any{"remainHour": float64(1), "remainMinute": float64(5)},
			},
			map[string]any{
				"location":      map[string]any{"locationName": "RIGHT_FRONT"},
				"currentState":  "INITIAL",
				"operationMode": "POWER_ON",
			},
		}},
	}
	svc := NewSnapshotService(factoryFor(session), logger.Nop())

	snap, err := svc.Build(context.Background(), testConfig(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.CooktopZones) != 2 {
		t.Fatalf("zones = %+v", snap.CooktopZones)
	}
	left := snap.CooktopZones[0]
	if left.Location != "LEFT_FRONT" || left.Power != float64(6) || left.Timer.Minute != float64(5) {
		t.Fatalf("left zone = %+v", left)
	}
	if snap.Status["operation"] != "POWER_ON" {
		t.Fatalf("device-level operation = %v", snap.Status["operation"])
	}
	if snap.SelectedLocation != "" {
		t.Fatalf("cooktops have no selected cavity, got %q", snap.SelectedLocation)
	}
}

func TestBuild_VendorErrorSurfaces(t *testing.T) {
	session := &fakeSession{listErr: &fakeVendorErr{}}
	svc := NewSnapshotService(factoryFor(session), logger.Nop())

	if _, err := svc.Build(context.Background(), testConfig(), "", ""); err == nil {
		t.Fatalf("expected error")
	}
	if !session.closed {
		t.Fatalf("session must be closed on the error path")
	}
}

type fakeVendorErr struct{}

func (f *fakeVendorErr) Error() string { return "vendor down" }
