package bluetooth

import (
	"errors"
	"fmt"

	"github.com/audioswitcher/bluetooth/winbt"
)

var (
	ErrNoRadiosFound            = errors.New("bluetooth: no radios found")
	ErrNoDevicesFound           = errors.New("bluetooth: no devices found")
	ErrDeviceNotFound           = errors.New("bluetooth: device not found")
	ErrClosed                   = errors.New("bluetooth: radio already closed")
	ErrUnsupported              = errors.New("bluetooth: not supported on this platform")
	ErrInvalidTimeoutMultiplier = fmt.Errorf("bluetooth: timeout multiplier must be at most %d", winbt.MaxTimeoutMultiplier)
)

// Radio is the Bluetooth radio (adapter) of the system.
//
// The Windows Bluetooth stack supports only one radio, and so does this
// package: OpenRadio returns the first one. A Radio is not safe for
// concurrent use.
type Radio struct {
	Name          string
	Address       MAC
	ClassOfDevice ClassOfDevice
	Manufacturer  uint16
	LMPSubversion uint16

	handle radioPlatform
	closed bool
}

// OpenRadio opens the first Bluetooth radio of the system. It must be closed
// with Close. When there is no radio, ErrNoRadiosFound is returned.
func OpenRadio() (*Radio, error) {
	return openRadio()
}

// Close releases the OS handle of the radio. It may be called only once,
// subsequent calls return ErrClosed.
func (r *Radio) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	return r.close()
}

// Devices lists the devices known to this radio, as selected by opts. When
// the search comes up empty, ErrNoDevicesFound is returned.
func (r *Radio) Devices(opts SearchOptions) ([]Device, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return findDevices(r, opts)
}

// Devices lists the devices known to all radios of the system, as selected by
// opts. When the search comes up empty, ErrNoDevicesFound is returned.
func Devices(opts SearchOptions) ([]Device, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return findDevices(nil, opts)
}

// Device looks up a single device by its address.
func (r *Radio) Device(address MAC, opts SearchOptions) (Device, error) {
	devices, err := r.Devices(opts)
	if err != nil {
		if errors.Is(err, ErrNoDevicesFound) {
			return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, address)
		}
		return Device{}, err
	}
	for _, d := range devices {
		if d.Address == address {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, address)
}

// Services returns the services that are enabled on the given device.
func (r *Radio) Services(d Device) ([]UUID, error) {
	if r.closed {
		return nil, ErrClosed
	}
	return r.services(d)
}

// SetServiceState enables or disables a service on the given device. On
// Windows, enabling or disabling the audio sink or hands-free service is
// what adds or removes the matching audio endpoint.
func (r *Radio) SetServiceState(d Device, service UUID, enable bool) error {
	if r.closed {
		return ErrClosed
	}
	return r.setServiceState(d, service, enable)
}

// makeRadio converts the Win32 radio info. The handle is left for the caller
// to fill in.
func makeRadio(info *winbt.RadioInfo) *Radio {
	return &Radio{
		Name:          winbt.UTF16ToString(info.Name[:]),
		Address:       MAC(info.Address.Bytes()),
		ClassOfDevice: ClassOfDevice(info.ClassOfDevice),
		Manufacturer:  info.Manufacturer,
		LMPSubversion: info.LMPSubversion,
	}
}
