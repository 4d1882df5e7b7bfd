package contracts

// DeviceInfo contains information about a MIDI input device.
type DeviceInfo struct {
	Name         string // Device name, used for substring selection.
	Manufacturer string // Device manufacturer, empty when the driver doesn't report one.
	EntityName   string // Name of the entity to which the device belongs.
}

func (d DeviceInfo) String() string {
	if d.Manufacturer == "" {
		return d.Name
	}
	return d.Name + " (" + d.Manufacturer + ")"
}
