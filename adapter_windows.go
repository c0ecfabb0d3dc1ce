package bluetooth

import (
	"errors"
	"fmt"

	"github.com/audioswitcher/bluetooth/winbt"
)

// The Win32 calls, replaced in tests to check that every handle is released.
var (
	findFirstRadio  = winbt.FindFirstRadio
	findRadioClose  = winbt.FindRadioClose
	getRadioInfo    = winbt.GetRadioInfo
	findFirstDevice = winbt.FindFirstDevice
	findNextDevice  = winbt.FindNextDevice
	findDeviceClose = winbt.FindDeviceClose
	closeHandle     = winbt.CloseHandle
)

type radioPlatform struct {
	handle winbt.Handle
}

// devicePlatform keeps a copy of the raw device record, which the service
// calls need to identify the device.
type devicePlatform struct {
	info winbt.DeviceInfo
}

// openRadio gets the first Bluetooth radio plugged into the system.
//
// According to Microsoft's own documentation, "The Bluetooth stack in Windows
// supports only one Bluetooth radio". The radio search cursor is closed right
// away, only the radio handle is kept.
func openRadio() (*Radio, error) {
	var handle winbt.Handle
	find, err := findFirstRadio(winbt.NewFindRadioParams(), &handle)
	if err != nil {
		if errors.Is(err, winbt.ErrNoMoreItems) {
			return nil, ErrNoRadiosFound
		}
		return nil, fmt.Errorf("bluetooth: could not find radio: %w", err)
	}
	if err := findRadioClose(find); err != nil {
		closeHandle(handle)
		return nil, fmt.Errorf("bluetooth: could not close radio search: %w", err)
	}

	info := winbt.NewRadioInfo()
	if err := getRadioInfo(handle, info); err != nil {
		closeHandle(handle)
		return nil, fmt.Errorf("bluetooth: could not get radio info: %w", err)
	}

	radio := makeRadio(info)
	radio.handle = radioPlatform{handle: handle}
	return radio, nil
}

// close releases the radio handle. A Radio that didn't come from OpenRadio
// has no handle to release.
func (r *Radio) close() error {
	if r.handle.handle == 0 {
		return nil
	}
	if err := closeHandle(r.handle.handle); err != nil {
		return fmt.Errorf("bluetooth: could not close radio: %w", err)
	}
	return nil
}

// findDevices walks the device search cursor. A nil radio searches all
// radios. The cursor is closed on every path once it has been opened.
func findDevices(r *Radio, opts SearchOptions) (devices []Device, err error) {
	var radio winbt.Handle
	if r != nil {
		radio = r.handle.handle
	}

	info := winbt.NewDeviceInfo()
	find, err := findFirstDevice(opts.searchParams(radio), info)
	if err != nil {
		if errors.Is(err, winbt.ErrNoMoreItems) {
			return nil, ErrNoDevicesFound
		}
		return nil, fmt.Errorf("bluetooth: could not start device search: %w", err)
	}
	defer func() {
		if closeErr := findDeviceClose(find); closeErr != nil && err == nil {
			err = fmt.Errorf("bluetooth: could not close device search: %w", closeErr)
		}
	}()

	for {
		devices = append(devices, newDevice(info))
		err = findNextDevice(find, info)
		if errors.Is(err, winbt.ErrNoMoreItems) {
			return devices, nil
		}
		if err != nil {
			return nil, fmt.Errorf("bluetooth: could not continue device search: %w", err)
		}
	}
}

func newDevice(info *winbt.DeviceInfo) Device {
	d := makeDevice(info)
	d.platform = devicePlatform{info: *info}
	return d
}

func (r *Radio) services(d Device) ([]UUID, error) {
	guids, err := winbt.EnumerateInstalledServices(r.handle.handle, d.rawInfo())
	if err != nil {
		return nil, fmt.Errorf("bluetooth: could not enumerate services of %s: %w", d.Address, err)
	}
	uuids := make([]UUID, 0, len(guids))
	for _, guid := range guids {
		uuids = append(uuids, NewUUIDFromGUID(guid))
	}
	return uuids, nil
}

func (r *Radio) setServiceState(d Device, service UUID, enable bool) error {
	guid := service.GUID()
	if err := winbt.SetServiceState(r.handle.handle, d.rawInfo(), &guid, enable); err != nil {
		return fmt.Errorf("bluetooth: could not set state of service %s on %s: %w", service, d.Address, err)
	}
	return nil
}

// rawInfo returns the device record to pass to the OS. Devices that were not
// returned by a search (for example, built by hand from an address) get a
// record with just the address filled in, which is all the service calls
// look at.
func (d Device) rawInfo() *winbt.DeviceInfo {
	if d.platform.info.Size != 0 {
		info := d.platform.info
		return &info
	}
	info := winbt.NewDeviceInfo()
	info.Address = winbt.AddressFromBytes([6]byte(d.Address))
	return info
}
