package service

import (
	"context"

	"thinqkitchen/internal/config"
	"thinqkitchen/internal/logger"
	"thinqkitchen/internal/models"
	"thinqkitchen/internal/thinq"
)

// SnapshotService assembles the per-request appliance view: list devices,
// pick one, fetch its profile and status, and project the loosely typed
// vendor payloads into the flat display structure.
type SnapshotService struct {
	sessions SessionFactory
	log      *logger.Logger
}

func NewSnapshotService(sessions SessionFactory, log *logger.Logger) *SnapshotService {
	return &SnapshotService{sessions: sessions, log: log}
}

// Build returns the snapshot for the requested device and location. Both
// parameters are optional: with no device id the first device is shown, with
// no location the resolver falls back through the conventional cavities.
func (s *SnapshotService) Build(ctx context.Context, cfg config.Config, deviceID, location string) (models.ApplianceSnapshot, error) {
	session := s.sessions(cfg)
	defer session.Close()

	listPayload, err := session.GetDeviceList(ctx)
	if err != nil {
		return models.EmptySnapshot(), err
	}
	devices := thinq.ProjectDescriptors(thinq.ExtractDeviceList(listPayload))

	snap := models.EmptySnapshot()
	snap.Devices = devices

	selected := thinq.PickDevice(devices, deviceID)
	if selected == nil {
		return snap, nil
	}
	snap.Selected = selected

	profilePayload, err := session.GetDeviceProfile(ctx, selected.DeviceID)
	if err != nil {
		return models.EmptySnapshot(), err
	}
	profile, err := thinq.ExtractProfile(profilePayload)
	if err != nil {
		return models.EmptySnapshot(), err
	}
	statusPayload, err := session.GetDeviceStatus(ctx, selected.DeviceID)
	if err != nil {
		return models.EmptySnapshot(), err
	}
	status := thinq.ExtractStatus(statusPayload)
	snap.RawStatus = status

	switch {
	case selected.IsOven():
		s.projectOven(&snap, profile, status, location)
	case selected.IsCooktop():
		s.projectCooktop(&snap, profile, status)
	}
	return snap, nil
}

func (s *SnapshotService) projectOven(snap *models.ApplianceSnapshot, profile map[string]any, status any, location string) {
	appliance := thinq.BuildAppliance(profile, status, thinq.LocationOven)
	sub, picked, ok := appliance.Resolve(location)
	if !ok {
		s.log.Debugw("oven exposes no sub-devices", "device_id", snap.Selected.DeviceID)
		return
	}

	unit := thinq.AsText(sub.Status(thinq.PropTemperatureUnit))
	if unit == "" {
		unit = "F"
	}
	for _, loc := range appliance.Locations() {
		snap.Locations = append(snap.Locations, string(loc))
	}
	snap.SelectedLocation = string(picked)
	snap.Unit = unit
	snap.CookModes = sub.CookModes()
	snap.TempHint = sub.TempHint(unit)
	snap.Status = map[string]any{
		"operation":      sub.Status(thinq.PropOvenOperationMode),
		"cook_mode":      sub.Status(thinq.PropCookMode),
		"state":          sub.Status(thinq.PropCurrentState),
		"target_f":       sub.Status(thinq.PropTargetTemperatureF),
		"target_c":       sub.Status(thinq.PropTargetTemperatureC),
		"remote_enabled": sub.Status(thinq.PropRemoteControlEnabled),
		"location":       string(picked),
	}
}

func (s *SnapshotService) projectCooktop(snap *models.ApplianceSnapshot, profile map[string]any, status any) {
	appliance := thinq.BuildAppliance(profile, status, thinq.LocationCenter)
	root := appliance.Root()
	snap.Status = map[string]any{
		"operation":      root.Status(thinq.PropOperationMode),
		"remote_enabled": root.Status(thinq.PropRemoteControlEnabled),
	}
	for _, zone := range appliance.Zones() {
		snap.CooktopZones = append(snap.CooktopZones, models.ZoneStatus{
			Location:      string(zone.Location()),
			State:         zone.Status(thinq.PropCurrentState),
			Power:         zone.Status(thinq.PropPowerLevel),
			RemoteEnabled: zone.Status(thinq.PropRemoteControlEnabled),
			Timer: models.ZoneTimer{
				Hour:   zone.Status(thinq.PropRemainHour),
				Minute: zone.Status(thinq.PropRemainMinute),
			},
		})
	}
}
