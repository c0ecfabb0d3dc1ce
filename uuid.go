package bluetooth

// This file implements 16-bit and 128-bit UUIDs as defined in the Bluetooth
// specification. Classic Bluetooth uses them to identify the services
// (profiles) a device offers.

import (
	"errors"

	"github.com/go-ole/go-ole"
)

// UUID is a single UUID as used in the Bluetooth stack. It is represented as a
// [4]uint32 instead of a [16]byte for efficiency. uuid[3] holds the most
// significant 32 bits.
type UUID [4]uint32

var errInvalidUUID = errors.New("bluetooth: failed to parse UUID")

// New16BitUUID returns a new 128-bit UUID based on a 16-bit UUID.
//
// Note: only use registered UUIDs. See
// https://www.bluetooth.com/specifications/assigned-numbers/ for a list.
func New16BitUUID(shortUUID uint16) UUID {
	// https://stackoverflow.com/questions/36212020/how-can-i-convert-a-bluetooth-16-bit-service-uuid-into-a-128-bit-uuid
	var uuid UUID
	uuid[0] = 0x5F9B34FB
	uuid[1] = 0x80000080
	uuid[2] = 0x00001000
	uuid[3] = uint32(shortUUID)
	return uuid
}

// Is16Bit returns whether this UUID is a 16-bit Bluetooth SIG UUID.
func (uuid UUID) Is16Bit() bool {
	return uuid.Is32Bit() && uuid[3] == uint32(uint16(uuid[3]))
}

// Is32Bit returns whether this UUID is a 32-bit Bluetooth SIG UUID.
func (uuid UUID) Is32Bit() bool {
	return uuid[0] == 0x5F9B34FB && uuid[1] == 0x80000080 && uuid[2] == 0x00001000
}

// Get16Bit returns the 16-bit version of this UUID. This is only valid if it
// actually is a 16-bit UUID, see Is16Bit.
func (uuid UUID) Get16Bit() uint16 {
	return uint16(uuid[3])
}

// ParseUUID parses a UUID in the 00001234-0000-1000-8000-00805f9b34fb format,
// in upper or lower case.
func ParseUUID(s string) (uuid UUID, err error) {
	if len(s) != 36 {
		return uuid, errInvalidUUID
	}
	uuidIndex := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 8 || i == 13 || i == 18 || i == 23 {
			if c != '-' {
				return UUID{}, errInvalidUUID
			}
			continue
		}
		var nibble byte
		switch {
		case c >= '0' && c <= '9':
			nibble = c - '0'
		case c >= 'a' && c <= 'f':
			nibble = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			nibble = c - 'A' + 10
		default:
			return UUID{}, errInvalidUUID
		}
		// uuidIndex counts nibbles from the most significant one.
		word := 3 - uuidIndex/8
		uuid[word] |= uint32(nibble) << (4 * (7 - uuidIndex%8))
		uuidIndex++
	}
	return uuid, nil
}

// String returns a human-readable version of this UUID, such as
// 00001234-0000-1000-8000-00805f9b34fb.
func (uuid UUID) String() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 0, 36)
	for i := 0; i < 32; i++ {
		if i == 8 || i == 12 || i == 16 || i == 20 {
			buf = append(buf, '-')
		}
		word := uuid[3-i/8]
		nibble := (word >> (4 * (7 - uint(i%8)))) & 0xf
		buf = append(buf, hexDigits[nibble])
	}
	return string(buf)
}

// MarshalText implements encoding.TextMarshaler.
func (uuid UUID) MarshalText() ([]byte, error) {
	return []byte(uuid.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (uuid *UUID) UnmarshalText(text []byte) error {
	parsed, err := ParseUUID(string(text))
	if err != nil {
		return err
	}
	*uuid = parsed
	return nil
}

// NewUUIDFromGUID converts a Windows GUID, as returned by the service
// enumeration calls, into a UUID.
func NewUUIDFromGUID(guid ole.GUID) UUID {
	var uuid UUID
	uuid[3] = guid.Data1
	uuid[2] = uint32(guid.Data2)<<16 | uint32(guid.Data3)
	uuid[1] = uint32(guid.Data4[0])<<24 | uint32(guid.Data4[1])<<16 | uint32(guid.Data4[2])<<8 | uint32(guid.Data4[3])
	uuid[0] = uint32(guid.Data4[4])<<24 | uint32(guid.Data4[5])<<16 | uint32(guid.Data4[6])<<8 | uint32(guid.Data4[7])
	return uuid
}

// GUID converts the UUID into the Windows GUID layout.
func (uuid UUID) GUID() ole.GUID {
	return ole.GUID{
		Data1: uuid[3],
		Data2: uint16(uuid[2] >> 16),
		Data3: uint16(uuid[2]),
		Data4: [8]byte{
			byte(uuid[1] >> 24), byte(uuid[1] >> 16), byte(uuid[1] >> 8), byte(uuid[1]),
			byte(uuid[0] >> 24), byte(uuid[0] >> 16), byte(uuid[0] >> 8), byte(uuid[0]),
		},
	}
}
