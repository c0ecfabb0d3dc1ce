package bluetooth

import "fmt"

// DeviceClass lists the Bluetooth device classes this package cares about.
//
// This list is incomplete: there are hundreds of device classes, listed in
// the Bluetooth SIG assigned numbers document, and only the audio related
// ones are of interest here. Everything else is DeviceClassOther.
type DeviceClass uint8

const (
	DeviceClassOther DeviceClass = iota
	DeviceClassHeadset
	DeviceClassMicrophone
	DeviceClassSpeaker
	DeviceClassHeadphones
)

func (c DeviceClass) String() string {
	switch c {
	case DeviceClassHeadset:
		return "Headset"
	case DeviceClassMicrophone:
		return "Microphone"
	case DeviceClassSpeaker:
		return "Speaker"
	case DeviceClassHeadphones:
		return "Headphones"
	default:
		return "Other"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c DeviceClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ClassOfDevice is the raw 24-bit Class of Device field (stored in a 32-bit
// integer by the OS). Bits 2-7 hold the minor class, bits 8-12 the major class
// and bits 13-23 the major service classes.
type ClassOfDevice uint32

// Major device classes.
const (
	MajorClassMiscellaneous uint8 = 0x00
	MajorClassComputer      uint8 = 0x01
	MajorClassPhone         uint8 = 0x02
	MajorClassNetwork       uint8 = 0x03
	MajorClassAudioVideo    uint8 = 0x04
	MajorClassPeripheral    uint8 = 0x05
	MajorClassImaging       uint8 = 0x06
	MajorClassWearable      uint8 = 0x07
	MajorClassToy           uint8 = 0x08
	MajorClassHealth        uint8 = 0x09
	MajorClassUncategorized uint8 = 0x1f
)

// Minor classes of the Audio/Video major class.
const (
	MinorClassAudioVideoUncategorized uint8 = 0x00
	MinorClassWearableHeadset         uint8 = 0x01
	MinorClassHandsfree               uint8 = 0x02
	MinorClassMicrophone              uint8 = 0x04
	MinorClassLoudspeaker             uint8 = 0x05
	MinorClassHeadphones              uint8 = 0x06
	MinorClassPortableAudio           uint8 = 0x07
	MinorClassCarAudio                uint8 = 0x08
	MinorClassHiFiAudio               uint8 = 0x0a
)

// Major returns the major device class.
func (c ClassOfDevice) Major() uint8 {
	return uint8(c>>8) & 0x1f
}

// Minor returns the minor device class. Its meaning depends on Major.
func (c ClassOfDevice) Minor() uint8 {
	return uint8(c>>2) & 0x3f
}

// Services returns the major service class bit field.
func (c ClassOfDevice) Services() uint16 {
	return uint16(c>>13) & 0x7ff
}

var majorClassNames = [...]string{
	MajorClassMiscellaneous: "Miscellaneous",
	MajorClassComputer:      "Computer",
	MajorClassPhone:         "Phone",
	MajorClassNetwork:       "Network Access Point",
	MajorClassAudioVideo:    "Audio/Video",
	MajorClassPeripheral:    "Peripheral",
	MajorClassImaging:       "Imaging",
	MajorClassWearable:      "Wearable",
	MajorClassToy:           "Toy",
	MajorClassHealth:        "Health",
}

// MajorName returns a human readable name of the major device class.
func (c ClassOfDevice) MajorName() string {
	major := c.Major()
	if int(major) < len(majorClassNames) {
		return majorClassNames[major]
	}
	return "Uncategorized"
}

func (c ClassOfDevice) String() string {
	return fmt.Sprintf("0x%06x", uint32(c))
}

// audioVideoClasses maps the minor classes of the Audio/Video major class to
// a DeviceClass. Minor classes that are not listed map to DeviceClassOther.
var audioVideoClasses = map[uint8]DeviceClass{
	MinorClassWearableHeadset: DeviceClassHeadset,
	MinorClassHandsfree:       DeviceClassHeadset,
	MinorClassMicrophone:      DeviceClassMicrophone,
	MinorClassLoudspeaker:     DeviceClassSpeaker,
	MinorClassHeadphones:      DeviceClassHeadphones,
}

// ClassFromIdentifier maps a device class identifier as reported by the OS to
// a DeviceClass. For example 2360340 (0x240414: a loudspeaker offering the
// rendering and audio services) maps to DeviceClassSpeaker and 2360344
// (0x240418) to DeviceClassHeadphones. The service bits are ignored.
func ClassFromIdentifier(identifier uint32) DeviceClass {
	cod := ClassOfDevice(identifier)
	if cod.Major() != MajorClassAudioVideo {
		return DeviceClassOther
	}
	if class, ok := audioVideoClasses[cod.Minor()]; ok {
		return class
	}
	return DeviceClassOther
}
