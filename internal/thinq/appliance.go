package thinq

import (
	"fmt"
	"strings"
)

// PropertySpec is the per-property slice of a device profile: the value
// constraints for reading and for writing. Either side may be a discrete set
// ([]any) or a {min,max} range (map[string]any), or absent entirely.
type PropertySpec struct {
	Readable any
	Writable any
}

// SubDevice is one zone of an appliance: its profile property specs plus the
// latest reported status values. Reads never fail; an absent property yields
// nil because not all models expose all properties.
type SubDevice struct {
	location Location
	specs    map[string]PropertySpec
	status   map[string]any
}

// Location returns the zone tag this sub-device is registered under, empty
// for the device-level root.
func (s *SubDevice) Location() Location { return s.location }

// Status returns the reported value of a property, nil when absent.
func (s *SubDevice) Status(name string) any { return s.status[name] }

// Spec returns the profile constraints of a property.
func (s *SubDevice) Spec(name string) (PropertySpec, bool) {
	spec, ok := s.specs[name]
	return spec, ok
}

// CookModes lists the selectable cook modes: the writable set when the model
// declares one, else the readable set, else nothing. Values are coerced to
// strings with nils dropped.
func (s *SubDevice) CookModes() []string {
	spec, ok := s.specs[PropCookMode]
	if !ok {
		return []string{}
	}
	values, ok := spec.Writable.([]any)
	if !ok || len(values) == 0 {
		values, _ = spec.Readable.([]any)
	}
	modes := make([]string, 0, len(values))
	for _, value := range values {
		if mode := AsText(value); mode != "" {
			modes = append(modes, mode)
		}
	}
	return modes
}

// TempHint renders the writable target-temperature constraint for the given
// unit as user guidance: "170-550F" for a {min,max} range, "300, 325, 350"
// for a discrete set, empty when the profile offers neither.
func (s *SubDevice) TempHint(unit string) string {
	prop := PropTargetTemperatureF
	if strings.EqualFold(unit, "C") {
		prop = PropTargetTemperatureC
	}
	spec, ok := s.specs[prop]
	if !ok {
		return ""
	}
	switch writable := spec.Writable.(type) {
	case map[string]any:
		min, hasMin := writable["min"]
		max, hasMax := writable["max"]
		if hasMin && hasMax && min != nil && max != nil {
			return fmt.Sprintf("%s-%s%s", AsText(min), AsText(max), strings.ToUpper(unit))
		}
	case []any:
		if len(writable) == 0 {
			return ""
		}
		parts := make([]string, 0, len(writable))
		for _, value := range writable {
			parts = append(parts, AsText(value))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// Appliance models one multi-zone device: a registry of sub-devices keyed by
// location, kept in registration order so iteration is deterministic, plus a
// device-level root aggregating every property for unlocated reads.
type Appliance struct {
	root  *SubDevice
	subs  map[Location]*SubDevice
	order []Location
}

func newSubDevice(loc Location) *SubDevice {
	return &SubDevice{
		location: loc,
		specs:    map[string]PropertySpec{},
		status:   map[string]any{},
	}
}

// BuildAppliance assembles the zone registry from a canonical profile and an
// optional canonical status. Profiles with a per-location property list
// register one sub-device per recognized location; a single property block is
// registered under defaultLoc (primary cavity for ovens, center for
// cooktops).
func BuildAppliance(profile map[string]any, status any, defaultLoc Location) *Appliance {
	a := &Appliance{root: newSubDevice(""), subs: map[Location]*SubDevice{}}

	switch property := profile["property"].(type) {
	case []any:
		for _, raw := range property {
			block, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			a.applyProfileBlock(block, defaultLoc)
		}
	case map[string]any:
		a.applyProfileBlock(property, defaultLoc)
	}

	a.ApplyStatus(status, defaultLoc)
	return a
}

// ApplyStatus merges reported status values into the matching sub-devices.
// Blocks naming an unregistered or unknown location only reach the root.
func (a *Appliance) ApplyStatus(status any, defaultLoc Location) {
	switch v := status.(type) {
	case []any:
		for _, raw := range v {
			block, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			a.applyStatusBlock(block, defaultLoc)
		}
	case map[string]any:
		a.applyStatusBlock(v, defaultLoc)
	}
}

func (a *Appliance) register(loc Location) *SubDevice {
	if sub, ok := a.subs[loc]; ok {
		return sub
	}
	sub := newSubDevice(loc)
	a.subs[loc] = sub
	a.order = append(a.order, loc)
	return sub
}

// blockLocation pulls the zone tag off a profile or status block:
// {"location": {"locationName": "UPPER"}}.
func blockLocation(m map[string]any) (Location, bool) {
	info, ok := m["location"].(map[string]any)
	if !ok {
		return "", false
	}
	return ParseLocation(AsText(info["locationName"]))
}

func (a *Appliance) applyProfileBlock(m map[string]any, defaultLoc Location) {
	loc, ok := blockLocation(m)
	if !ok {
		loc = defaultLoc
	}
	sub := a.register(loc)
	walkProperties(m, func(name string, spec PropertySpec) {
		sub.specs[name] = spec
		if _, present := a.root.specs[name]; !present {
			a.root.specs[name] = spec
		}
	})
}

func (a *Appliance) applyStatusBlock(m map[string]any, defaultLoc Location) {
	loc, located := blockLocation(m)
	if !located {
		loc = defaultLoc
	}
	sub, registered := a.subs[loc]
	walkValues(m, func(name string, value any) {
		if registered {
			sub.status[name] = value
		}
		// root keeps the first reported value for device-level reads
		if _, present := a.root.status[name]; !present {
			a.root.status[name] = value
		}
	})
}

// walkProperties visits every property spec in a profile block. ThinQ groups
// properties under resource keys ("cook", "temperature"), so one level of
// nesting is descended when a mapping does not itself look like a spec.
func walkProperties(m map[string]any, visit func(string, PropertySpec)) {
	for key, raw := range m {
		if key == "location" {
			continue
		}
		inner, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if isPropertySpec(inner) {
			visit(key, PropertySpec{Readable: inner[propertyReadable], Writable: inner[propertyWritable]})
			continue
		}
		for childKey, childRaw := range inner {
			child, ok := childRaw.(map[string]any)
			if !ok || !isPropertySpec(child) {
				continue
			}
			visit(childKey, PropertySpec{Readable: child[propertyReadable], Writable: child[propertyWritable]})
		}
	}
}

func isPropertySpec(m map[string]any) bool {
	_, readable := m[propertyReadable]
	_, writable := m[propertyWritable]
	return readable || writable
}

// walkValues visits every scalar status value in a block, descending one
// resource-grouping level the same way walkProperties does.
func walkValues(m map[string]any, visit func(string, any)) {
	for key, raw := range m {
		if key == "location" {
			continue
		}
		if inner, ok := raw.(map[string]any); ok {
			for childKey, childValue := range inner {
				if _, nested := childValue.(map[string]any); nested {
					continue
				}
				visit(childKey, childValue)
			}
			continue
		}
		visit(key, raw)
	}
}

// SubDevice returns the zone registered under loc.
func (a *Appliance) SubDevice(loc Location) (*SubDevice, bool) {
	sub, ok := a.subs[loc]
	return sub, ok
}

// Root exposes the device-level property view used for appliances whose
// status is not split by zone (cooktop operation mode, for example).
func (a *Appliance) Root() *SubDevice { return a.root }

// Locations lists registered zones in registration order.
func (a *Appliance) Locations() []Location {
	out := make([]Location, len(a.order))
	copy(out, a.order)
	return out
}

// Zones returns the registered sub-devices in registration order.
func (a *Appliance) Zones() []*SubDevice {
	out := make([]*SubDevice, 0, len(a.order))
	for _, loc := range a.order {
		out = append(out, a.subs[loc])
	}
	return out
}

// Resolve picks the active zone. An explicitly requested location wins when it
// names a registered zone (matched case-insensitively); otherwise the
// conventional cavities are tried in priority order; otherwise the first
// registered zone is the last resort. A device with no zones at all reports
// ok=false.
func (a *Appliance) Resolve(requested string) (*SubDevice, Location, bool) {
	if loc, ok := ParseLocation(requested); ok {
		if sub, ok := a.subs[loc]; ok {
			return sub, loc, true
		}
	}
	for _, loc := range defaultOvenLocations {
		if sub, ok := a.subs[loc]; ok {
			return sub, loc, true
		}
	}
	if len(a.order) > 0 {
		loc := a.order[0]
		return a.subs[loc], loc, true
	}
	return nil, "", false
}
