//go:build !windows && !linux

package bluetooth

// Enumerating classic Bluetooth devices needs the Win32 Bluetooth API or
// BlueZ. Everything else reports ErrUnsupported.

type radioPlatform struct{}

type devicePlatform struct{}

func openRadio() (*Radio, error) {
	return nil, ErrUnsupported
}

func (r *Radio) close() error {
	return nil
}

func findDevices(r *Radio, opts SearchOptions) ([]Device, error) {
	return nil, ErrUnsupported
}

func (r *Radio) services(d Device) ([]UUID, error) {
	return nil, ErrUnsupported
}

func (r *Radio) setServiceState(d Device, service UUID, enable bool) error {
	return ErrUnsupported
}
