// Some documentation for the BlueZ D-Bus interface:
// https://git.kernel.org/pub/scm/bluetooth/bluez.git/tree/doc

package bluetooth

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/muka/go-bluetooth/bluez/profile/adapter"
	"github.com/muka/go-bluetooth/bluez/profile/device"
)

type radioPlatform struct {
	adapter *adapter.Adapter1
}

// devicePlatform holds the D-Bus object path of the device.
type devicePlatform struct {
	path dbus.ObjectPath
}

// D-Bus errors that mean there is no radio to talk to: bluetoothd is not
// running, or it is not ready yet.
var noRadioErrors = []string{
	"org.freedesktop.DBus.Error.ServiceUnknown",
	"org.freedesktop.DBus.Error.NameHasNoOwner",
	"org.bluez.Error.NotReady",
}

// D-Bus errors that mean the object (adapter or device) doesn't exist.
var noObjectErrors = []string{
	"org.freedesktop.DBus.Error.UnknownObject",
	"org.freedesktop.DBus.Error.UnknownMethod",
	"org.bluez.Error.DoesNotExist",
}

// Adapter lookups, replaced in tests.
var (
	adapterExists = adapter.AdapterExists
	newAdapter    = adapter.NewAdapter1FromAdapterID
)

// openRadio opens the default adapter (usually hci0). BlueZ supports more than
// one adapter, but this package follows the Windows model of a single radio.
func openRadio() (*Radio, error) {
	a, err := openAdapter(adapter.GetDefaultAdapterID())
	if err != nil {
		return nil, err
	}
	radio := makeBluezRadio(a.Properties)
	radio.handle = radioPlatform{adapter: a}
	return radio, nil
}

// openAdapter opens the adapter with the given ID. The existence check is done
// here rather than through adapter.GetAdapter, which formats the D-Bus error
// into a string and so loses its name.
func openAdapter(id string) (*adapter.Adapter1, error) {
	exists, err := adapterExists(id)
	if err != nil {
		if isNoRadioError(err) || isNoObjectError(err) {
			return nil, ErrNoRadiosFound
		}
		return nil, fmt.Errorf("bluetooth: could not look up adapter %s: %w", id, err)
	}
	if !exists {
		return nil, ErrNoRadiosFound
	}
	a, err := newAdapter(id)
	if err != nil {
		if isNoRadioError(err) || isNoObjectError(err) {
			return nil, ErrNoRadiosFound
		}
		return nil, fmt.Errorf("bluetooth: could not open adapter %s: %w", id, err)
	}
	if a == nil || a.Properties == nil {
		return nil, ErrNoRadiosFound
	}
	return a, nil
}

func makeBluezRadio(props *adapter.Adapter1Properties) *Radio {
	// Assume the Address property is well-formed.
	addr, _ := ParseMAC(props.Address)
	name := props.Alias
	if name == "" {
		name = props.Name
	}
	return &Radio{
		Name:          name,
		Address:       addr,
		ClassOfDevice: ClassOfDevice(props.Class),
	}
}

func (r *Radio) close() error {
	if r.handle.adapter != nil {
		r.handle.adapter.Close()
	}
	return nil
}

// findDevices lists the devices BlueZ knows about. BlueZ can't filter the
// list like Windows does, so the filter is applied here. A nil radio uses
// the default adapter for the duration of the call.
func findDevices(r *Radio, opts SearchOptions) ([]Device, error) {
	if r == nil {
		radio, err := openRadio()
		if err != nil {
			return nil, err
		}
		defer radio.Close()
		r = radio
	}
	a := r.handle.adapter

	if opts.IssueInquiry && opts.TimeoutMultiplier > 0 {
		if err := a.StartDiscovery(); err != nil {
			return nil, fmt.Errorf("bluetooth: could not start discovery: %w", err)
		}
		time.Sleep(opts.InquiryDuration())
		if err := a.StopDiscovery(); err != nil {
			return nil, fmt.Errorf("bluetooth: could not stop discovery: %w", err)
		}
	}

	list, err := a.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("bluetooth: could not list devices: %w", err)
	}
	var devices []Device
	for _, dev := range list {
		if dev == nil || dev.Properties == nil {
			continue
		}
		d := makeBluezDevice(dev.Properties)
		d.platform = devicePlatform{path: dev.Path()}
		if opts.matches(d) {
			devices = append(devices, d)
		}
	}
	if len(devices) == 0 {
		return nil, ErrNoDevicesFound
	}
	return devices, nil
}

// makeBluezDevice converts the properties of an org.bluez.Device1 object.
// BlueZ has no notion of when a device was last seen or used, so those are
// left zero.
func makeBluezDevice(props *device.Device1Properties) Device {
	// Assume the Address property is well-formed.
	addr, _ := ParseMAC(props.Address)
	name := props.Alias
	if name == "" {
		name = props.Name
	}
	return Device{
		Class:         ClassFromIdentifier(props.Class),
		ClassOfDevice: ClassOfDevice(props.Class),
		Address:       addr,
		Name:          name,
		Connected:     props.Connected,
		Remembered:    props.Paired || props.Trusted,
		Authenticated: props.Paired,
	}
}

// devicePath returns the object path BlueZ uses for a device, such as
// /org/bluez/hci0/dev_11_22_33_AA_BB_CC.
func devicePath(adapterPath dbus.ObjectPath, address MAC) dbus.ObjectPath {
	return dbus.ObjectPath(string(adapterPath) + "/dev_" + strings.ToUpper(strings.ReplaceAll(address.String(), ":", "_")))
}

func (r *Radio) device1(d Device) (*device.Device1, error) {
	path := d.platform.path
	if path == "" {
		path = devicePath(r.handle.adapter.Path(), d.Address)
	}
	dev, err := newDevice1(path)
	if err != nil {
		if isNoRadioError(err) {
			return nil, ErrNoRadiosFound
		}
		if isNoObjectError(err) {
			return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, d.Address)
		}
		return nil, fmt.Errorf("bluetooth: could not get device %s: %w", d.Address, err)
	}
	return dev, nil
}

func (r *Radio) services(d Device) ([]UUID, error) {
	dev, err := r.device1(d)
	if err != nil {
		return nil, err
	}
	defer dev.Close()

	uuids := make([]UUID, 0, len(dev.Properties.UUIDs))
	for _, s := range dev.Properties.UUIDs {
		uuid, err := ParseUUID(s)
		if err != nil {
			continue
		}
		uuids = append(uuids, uuid)
	}
	return uuids, nil
}

// setServiceState maps onto connecting or disconnecting the profile, which is
// the closest BlueZ has to enabling or disabling a service.
func (r *Radio) setServiceState(d Device, service UUID, enable bool) error {
	dev, err := r.device1(d)
	if err != nil {
		return err
	}
	defer dev.Close()

	if enable {
		err = dev.ConnectProfile(service.String())
	} else {
		err = dev.DisconnectProfile(service.String())
	}
	if err != nil {
		return fmt.Errorf("bluetooth: could not set state of service %s on %s: %w", service, d.Address, err)
	}
	return nil
}

// newDevice1 opens a device object, replaced in tests.
var newDevice1 = device.NewDevice1

// isNoRadioError reports whether err means BlueZ can't be reached: one of the
// D-Bus errors in noRadioErrors, or no system bus to connect to at all.
func isNoRadioError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return hasDBusError(err, noRadioErrors)
}

// isNoObjectError reports whether err is one of the D-Bus errors in
// noObjectErrors.
func isNoObjectError(err error) bool {
	return hasDBusError(err, noObjectErrors)
}

// hasDBusError reports whether err carries a D-Bus error with one of the given
// names. godbus returns dbus.Error by value, but be lenient.
func hasDBusError(err error, names []string) bool {
	var name string
	var valueErr dbus.Error
	var ptrErr *dbus.Error
	switch {
	case errors.As(err, &valueErr):
		name = valueErr.Name
	case errors.As(err, &ptrErr):
		name = ptrErr.Name
	default:
		return false
	}
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}
