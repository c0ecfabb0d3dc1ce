package winbt

import (
	"time"
	"unicode/utf16"
	"unsafe"
)

// MaxNameSize is BLUETOOTH_MAX_NAME_SIZE, the number of WCHARs in the name
// buffers of RadioInfo and DeviceInfo.
const MaxNameSize = 248

// MaxTimeoutMultiplier is the largest inquiry timeout multiplier accepted by
// BluetoothFindFirstDevice. Each unit is 1.28 seconds.
const MaxTimeoutMultiplier = 48

// Address is BLUETOOTH_ADDRESS: a ULONGLONG union with BYTE rgBytes[6]. It is
// declared as a byte array so the struct offsets below don't depend on the
// alignment Go picks for uint64 on 386. Every struct that embeds it adds the
// padding MSVC would insert in front of it.
type Address [8]byte

// FindRadioParams is BLUETOOTH_FIND_RADIO_PARAMS.
type FindRadioParams struct {
	Size uint32
}

// RadioInfo is BLUETOOTH_RADIO_INFO.
type RadioInfo struct {
	Size          uint32
	_             uint32
	Address       Address
	Name          [MaxNameSize]uint16
	ClassOfDevice uint32
	LMPSubversion uint16
	Manufacturer  uint16
}

// DeviceSearchParams is BLUETOOTH_DEVICE_SEARCH_PARAMS.
type DeviceSearchParams struct {
	Size                uint32
	ReturnAuthenticated BOOL
	ReturnRemembered    BOOL
	ReturnUnknown       BOOL
	ReturnConnected     BOOL
	IssueInquiry        BOOL
	TimeoutMultiplier   uint8
	Radio               Handle
}

// DeviceInfo is BLUETOOTH_DEVICE_INFO.
type DeviceInfo struct {
	Size          uint32
	_             uint32
	Address       Address
	ClassOfDevice uint32
	Connected     BOOL
	Remembered    BOOL
	Authenticated BOOL
	LastSeen      SystemTime
	LastUsed      SystemTime
	Name          [MaxNameSize]uint16
}

// SystemTime is SYSTEMTIME.
type SystemTime struct {
	Year         uint16
	Month        uint16
	DayOfWeek    uint16
	Day          uint16
	Hour         uint16
	Minute       uint16
	Second       uint16
	Milliseconds uint16
}

func NewFindRadioParams() *FindRadioParams {
	p := &FindRadioParams{}
	p.Size = uint32(unsafe.Sizeof(*p))
	return p
}

func NewRadioInfo() *RadioInfo {
	info := &RadioInfo{}
	info.Size = uint32(unsafe.Sizeof(*info))
	return info
}

func NewDeviceSearchParams() *DeviceSearchParams {
	p := &DeviceSearchParams{}
	p.Size = uint32(unsafe.Sizeof(*p))
	return p
}

func NewDeviceInfo() *DeviceInfo {
	info := &DeviceInfo{}
	info.Size = uint32(unsafe.Sizeof(*info))
	return info
}

// Bytes returns the six significant bytes of the address in the order
// Windows stores them, which is least significant byte first.
func (a Address) Bytes() (b [6]byte) {
	copy(b[:], a[:6])
	return
}

// AddressFromBytes is the inverse of Address.Bytes.
func AddressFromBytes(b [6]byte) (a Address) {
	copy(a[:6], b[:])
	return
}

// Time converts the SYSTEMTIME into a time.Time in the local time zone.
// Windows reports "never" as an all-zero SYSTEMTIME; that, and any value that
// is not a valid calendar date, is returned as the zero time.Time.
func (st SystemTime) Time() time.Time {
	if st.Year == 0 || st.Month < 1 || st.Month > 12 || st.Day < 1 || st.Hour > 23 || st.Minute > 59 || st.Second > 59 {
		return time.Time{}
	}
	t := time.Date(int(st.Year), time.Month(st.Month), int(st.Day), int(st.Hour), int(st.Minute), int(st.Second), 0, time.Local)
	if t.Day() != int(st.Day) {
		// time.Date normalizes February 31st into March; Windows never
		// should produce such a date.
		return time.Time{}
	}
	return t
}

// UTF16ToString converts a null-padded UTF-16 buffer such as the szName
// fields into a string. Unlike windows.UTF16ToString it decodes the whole
// buffer and trims NULs from both ends, so a name is not lost when the
// buffer happens to start with padding. Invalid surrogates are replaced by
// U+FFFD.
func UTF16ToString(s []uint16) string {
	start, end := 0, len(s)
	for start < end && s[start] == 0 {
		start++
	}
	for end > start && s[end-1] == 0 {
		end--
	}
	return string(utf16.Decode(s[start:end]))
}
