package bluetooth

import (
	"time"

	"github.com/audioswitcher/bluetooth/winbt"
)

// Device is a Bluetooth device known to the system: paired, remembered,
// connected, or discovered by an inquiry. It is a snapshot of what the OS
// reported at enumeration time and is never updated afterwards.
type Device struct {
	Class         DeviceClass
	ClassOfDevice ClassOfDevice
	Address       MAC
	Name          string
	Connected     bool
	Remembered    bool
	Authenticated bool

	// LastSeen and LastUsed are zero when the OS doesn't know (or doesn't
	// track) them.
	LastSeen time.Time
	LastUsed time.Time

	// platform data needed to address the device in later calls, such as
	// the raw device record on Windows.
	platform devicePlatform
}

// SearchOptions selects the devices returned by a device search.
type SearchOptions struct {
	ReturnAuthenticated bool
	ReturnRemembered    bool
	ReturnUnknown       bool
	ReturnConnected     bool

	// IssueInquiry starts a new inquiry, so devices that are in range but
	// unknown to the system show up too. This makes the search block for
	// TimeoutMultiplier * 1.28 seconds.
	IssueInquiry      bool
	TimeoutMultiplier uint8
}

// DefaultSearchOptions returns options that find every device, with a short
// inquiry.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		ReturnAuthenticated: true,
		ReturnRemembered:    true,
		ReturnUnknown:       true,
		ReturnConnected:     true,
		IssueInquiry:        true,
		TimeoutMultiplier:   1,
	}
}

// InquiryDuration returns how long an inquiry with these options lasts.
func (o SearchOptions) InquiryDuration() time.Duration {
	if !o.IssueInquiry {
		return 0
	}
	return time.Duration(o.TimeoutMultiplier) * 1280 * time.Millisecond
}

// Validate checks the options before they are handed to the OS.
func (o SearchOptions) Validate() error {
	if o.TimeoutMultiplier > winbt.MaxTimeoutMultiplier {
		return ErrInvalidTimeoutMultiplier
	}
	return nil
}

// matches reports whether the device would be returned by an OS search with
// these options. It is used by backends that can only list everything.
func (o SearchOptions) matches(d Device) bool {
	switch {
	case o.ReturnAuthenticated && d.Authenticated:
		return true
	case o.ReturnRemembered && d.Remembered:
		return true
	case o.ReturnConnected && d.Connected:
		return true
	case o.ReturnUnknown && !d.Authenticated && !d.Remembered:
		return true
	}
	return false
}

// searchParams converts the options into the Win32 search parameters. A zero
// radio handle searches all radios.
func (o SearchOptions) searchParams(radio winbt.Handle) *winbt.DeviceSearchParams {
	params := winbt.NewDeviceSearchParams()
	params.ReturnAuthenticated = winbt.BoolToBOOL(o.ReturnAuthenticated)
	params.ReturnRemembered = winbt.BoolToBOOL(o.ReturnRemembered)
	params.ReturnUnknown = winbt.BoolToBOOL(o.ReturnUnknown)
	params.ReturnConnected = winbt.BoolToBOOL(o.ReturnConnected)
	params.IssueInquiry = winbt.BoolToBOOL(o.IssueInquiry)
	params.TimeoutMultiplier = o.TimeoutMultiplier
	params.Radio = radio
	return params
}

// makeDevice converts a raw Win32 device record. The platform field is left
// for the caller to fill in.
func makeDevice(info *winbt.DeviceInfo) Device {
	return Device{
		Class:         ClassFromIdentifier(info.ClassOfDevice),
		ClassOfDevice: ClassOfDevice(info.ClassOfDevice),
		Address:       MAC(info.Address.Bytes()),
		Name:          winbt.UTF16ToString(info.Name[:]),
		Connected:     info.Connected.Bool(),
		Remembered:    info.Remembered.Bool(),
		Authenticated: info.Authenticated.Bool(),
		LastSeen:      info.LastSeen.Time(),
		LastUsed:      info.LastUsed.Time(),
	}
}
