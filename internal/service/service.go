package service

import (
	"context"
	"fmt"

	"thinqkitchen/internal/config"
	"thinqkitchen/internal/logger"
	"thinqkitchen/internal/models"
)

// VendorSession is the per-request connection to the ThinQ API. A session is
// acquired at the start of an operation and must be closed on every exit path.
type VendorSession interface {
	GetDeviceList(ctx context.Context) (any, error)
	GetDeviceProfile(ctx context.Context, deviceID string) (any, error)
	GetDeviceStatus(ctx context.Context, deviceID string) (any, error)
	ControlDevice(ctx context.Context, deviceID string, payload map[string]any) error
	Close()
}

// SessionFactory opens a fresh vendor session for one request's credentials.
type SessionFactory func(cfg config.Config) VendorSession

// Snapshot builds the display view of the selected appliance.
type Snapshot interface {
	Build(ctx context.Context, cfg config.Config, deviceID, location string) (models.ApplianceSnapshot, error)
}

// Dispatch forwards user actions to the vendor API.
type Dispatch interface {
	Preheat(ctx context.Context, cfg config.Config, p PreheatParams) error
	OvenAction(ctx context.Context, cfg config.Config, deviceID, location, action string) error
}

// Service aggregates all sub-services.
type Service struct {
	Snapshot
	Dispatch
}

// NewService wires the vendor session factory into concrete services.
func NewService(sessions SessionFactory, log *logger.Logger) *Service {
	return &Service{
		Snapshot: NewSnapshotService(sessions, log),
		Dispatch: NewDispatchService(sessions, log),
	}
}

// ValidationError is a locally detected problem with a request: device not
// found, device not an oven, no resolvable sub-device, unknown action, remote
// control off. It is surfaced to the user as-is and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
