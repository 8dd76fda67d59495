package service

import (
	"context"
	"strconv"
	"strings"

	"thinqkitchen/internal/config"
	"thinqkitchen/internal/logger"
	"thinqkitchen/internal/models"
	"thinqkitchen/internal/thinq"
)

// Action vocabulary accepted by the preheat route. The refresh variants
// re-fetch status first and refuse when remote control is verified off.
const (
	ActionPreheat        = "preheat"
	ActionRefreshPreheat = "refresh_preheat"
	ActionTestUpper      = "test_upper"
	ActionTestLower      = "test_lower"
)

// Oven actions accepted by the oven-action route.
const (
	ActionStart     = "start"
	ActionStop      = "stop"
	ActionRemoteOn  = "remote_on"
	ActionRemoteOff = "remote_off"
)

// PreheatParams carries one preheat request. Temperature arrives as the raw
// form value and must parse as an integer.
type PreheatParams struct {
	DeviceID    string
	Mode        string
	Unit        string
	Temperature string
	Location    string
	Refresh     bool
}

// PreheatRefreshes reports whether a preheat-route action implies a status
// refresh and remote-control check, and whether the action is known at all.
func PreheatRefreshes(action string) (refresh, known bool) {
	switch action {
	case "", ActionPreheat:
		return false, true
	case ActionRefreshPreheat, ActionTestUpper, ActionTestLower:
		return true, true
	default:
		return false, false
	}
}

// DispatchService translates the fixed action vocabulary into vendor
// commands.
type DispatchService struct {
	sessions SessionFactory
	log      *logger.Logger
}

func NewDispatchService(sessions SessionFactory, log *logger.Logger) *DispatchService {
	return &DispatchService{sessions: sessions, log: log}
}

// Preheat sends cook mode plus target temperature to the resolved oven
// cavity. With Refresh set, status is re-fetched first and the command is
// refused when the cavity reports remote control off.
func (s *DispatchService) Preheat(ctx context.Context, cfg config.Config, p PreheatParams) error {
	temperature, err := strconv.Atoi(strings.TrimSpace(p.Temperature))
	if err != nil {
		return invalidf("temperature %q is not a whole number", p.Temperature)
	}
	if strings.TrimSpace(p.Mode) == "" {
		return invalidf("cook mode is required")
	}

	session := s.sessions(cfg)
	defer session.Close()

	selected, err := s.pickOven(ctx, session, p.DeviceID, "no oven device found for the provided device id")
	if err != nil {
		return err
	}

	appliance, err := s.fetchAppliance(ctx, session, selected.DeviceID, p.Refresh)
	if err != nil {
		return err
	}
	sub, location, ok := appliance.Resolve(p.Location)
	if !ok {
		return invalidf("no oven sub-device found for this model")
	}
	if p.Refresh {
		if enabled, verified := sub.Status(thinq.PropRemoteControlEnabled).(bool); verified && !enabled {
			return invalidf("remote control is OFF for %s; enable remote on the appliance and try again", location)
		}
	}

	unit := strings.ToUpper(strings.TrimSpace(p.Unit))
	if unit != "C" {
		unit = "F"
	}
	s.log.Infow("sending preheat", "device_id", selected.DeviceID, "location", location,
		"mode", p.Mode, "temperature", temperature, "unit", unit, "refreshed", p.Refresh)
	return session.ControlDevice(ctx, selected.DeviceID, thinq.CookModeWithTemperature(location, p.Mode, temperature, unit))
}

// OvenAction sends a start/stop or remote-enable toggle to the resolved oven
// cavity. Unknown action names fail before any vendor call.
func (s *DispatchService) OvenAction(ctx context.Context, cfg config.Config, deviceID, location, action string) error {
	var payload func(thinq.Location) map[string]any
	switch action {
	case ActionStart:
		payload = func(loc thinq.Location) map[string]any { return thinq.OperationMode(loc, "START") }
	case ActionStop:
		payload = func(loc thinq.Location) map[string]any { return thinq.OperationMode(loc, "STOP") }
	case ActionRemoteOn:
		payload = func(loc thinq.Location) map[string]any { return thinq.Attribute(loc, thinq.PropRemoteControlEnabled, true) }
	case ActionRemoteOff:
		payload = func(loc thinq.Location) map[string]any { return thinq.Attribute(loc, thinq.PropRemoteControlEnabled, false) }
	default:
		return invalidf("unknown action: %s", action)
	}

	session := s.sessions(cfg)
	defer session.Close()

	selected, err := s.pickOven(ctx, session, deviceID, "selected device is not an oven")
	if err != nil {
		return err
	}
	appliance, err := s.fetchAppliance(ctx, session, selected.DeviceID, false)
	if err != nil {
		return err
	}
	_, loc, ok := appliance.Resolve(location)
	if !ok {
		return invalidf("no oven sub-device found for this model")
	}
	s.log.Infow("sending oven action", "device_id", selected.DeviceID, "location", loc, "action", action)
	return session.ControlDevice(ctx, selected.DeviceID, payload(loc))
}

// pickOven lists devices, selects one, and insists it is an oven. notFound is
// the message used when no device matches at all.
func (s *DispatchService) pickOven(ctx context.Context, session VendorSession, deviceID, notFound string) (*models.DeviceDescriptor, error) {
	listPayload, err := session.GetDeviceList(ctx)
	if err != nil {
		return nil, err
	}
	devices := thinq.ProjectDescriptors(thinq.ExtractDeviceList(listPayload))
	selected := thinq.PickDevice(devices, deviceID)
	if selected == nil {
		return nil, invalidf("%s", notFound)
	}
	if !selected.IsOven() {
		return nil, invalidf("selected device is not an oven")
	}
	return selected, nil
}

// fetchAppliance builds the zone registry from the device profile, optionally
// refreshed with current status.
func (s *DispatchService) fetchAppliance(ctx context.Context, session VendorSession, deviceID string, withStatus bool) (*thinq.Appliance, error) {
	profilePayload, err := session.GetDeviceProfile(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	profile, err := thinq.ExtractProfile(profilePayload)
	if err != nil {
		return nil, err
	}
	var status any
	if withStatus {
		statusPayload, err := session.GetDeviceStatus(ctx, deviceID)
		if err != nil {
			return nil, err
		}
		status = thinq.ExtractStatus(statusPayload)
	}
	return thinq.BuildAppliance(profile, status, thinq.LocationOven), nil
}
