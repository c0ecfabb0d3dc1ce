package bluetooth

import "errors"

// MAC represents a Bluetooth device address, in little endian format. This
// is the byte order in which the operating system hands it over, so String
// reverses it.
type MAC [6]byte

var errInvalidMAC = errors.New("bluetooth: failed to parse MAC address")

// ParseMAC parses the given MAC address, which must be in 11:22:33:aa:bb:cc
// format. Both upper and lower case hex digits are accepted. If it cannot be
// parsed, an error is returned.
func ParseMAC(s string) (mac MAC, err error) {
	if len(s) != 17 {
		err = errInvalidMAC
		return
	}
	macIndex := 11
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i%3 == 2 {
			if c != ':' {
				err = errInvalidMAC
				return
			}
			continue
		}
		var nibble byte
		switch {
		case c >= '0' && c <= '9':
			nibble = c - '0' + 0x0
		case c >= 'A' && c <= 'F':
			nibble = c - 'A' + 0xA
		case c >= 'a' && c <= 'f':
			nibble = c - 'a' + 0xA
		default:
			err = errInvalidMAC
			return
		}
		if macIndex%2 == 0 {
			mac[macIndex/2] |= nibble
		} else {
			mac[macIndex/2] |= nibble << 4
		}
		macIndex--
	}
	return
}

// String returns a human-readable version of this MAC address, such as
// 11:22:33:aa:bb:cc. The most significant byte comes first.
func (mac MAC) String() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 0, 17)
	for i := 5; i >= 0; i-- {
		if i != 5 {
			buf = append(buf, ':')
		}
		buf = append(buf, hexDigits[mac[i]>>4], hexDigits[mac[i]&0x0f])
	}
	return string(buf)
}

// MarshalText implements encoding.TextMarshaler, so addresses show up in
// their usual notation in JSON and YAML output.
func (mac MAC) MarshalText() ([]byte, error) {
	return []byte(mac.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mac *MAC) UnmarshalText(text []byte) error {
	parsed, err := ParseMAC(string(text))
	if err != nil {
		return err
	}
	*mac = parsed
	return nil
}
