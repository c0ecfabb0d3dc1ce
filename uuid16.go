package bluetooth

// Service class UUIDs of the classic Bluetooth profiles, as listed in the
// "Service Class" section of the Bluetooth SIG assigned numbers. Only the
// ones that matter for audio devices (plus a few that show up on nearly
// every device) are listed.
var (
	ServiceUUIDSerialPort            = New16BitUUID(0x1101)
	ServiceUUIDHeadset               = New16BitUUID(0x1108)
	ServiceUUIDAudioSource           = New16BitUUID(0x110A)
	ServiceUUIDAudioSink             = New16BitUUID(0x110B)
	ServiceUUIDAVRemoteControlTarget = New16BitUUID(0x110C)
	ServiceUUIDAdvancedAudio         = New16BitUUID(0x110D)
	ServiceUUIDAVRemoteControl       = New16BitUUID(0x110E)
	ServiceUUIDAVRemoteController    = New16BitUUID(0x110F)
	ServiceUUIDHeadsetAudioGateway   = New16BitUUID(0x1112)
	ServiceUUIDHandsfree             = New16BitUUID(0x111E)
	ServiceUUIDHandsfreeAudioGateway = New16BitUUID(0x111F)
	ServiceUUIDHumanInterfaceDevice  = New16BitUUID(0x1124)
	ServiceUUIDPnPInformation        = New16BitUUID(0x1200)
	ServiceUUIDGenericAudio          = New16BitUUID(0x1203)
)

var serviceNames = map[UUID]string{
	ServiceUUIDSerialPort:            "Serial Port",
	ServiceUUIDHeadset:               "Headset",
	ServiceUUIDAudioSource:           "Audio Source",
	ServiceUUIDAudioSink:             "Audio Sink",
	ServiceUUIDAVRemoteControlTarget: "A/V Remote Control Target",
	ServiceUUIDAdvancedAudio:         "Advanced Audio Distribution",
	ServiceUUIDAVRemoteControl:       "A/V Remote Control",
	ServiceUUIDAVRemoteController:    "A/V Remote Control Controller",
	ServiceUUIDHeadsetAudioGateway:   "Headset Audio Gateway",
	ServiceUUIDHandsfree:             "Handsfree",
	ServiceUUIDHandsfreeAudioGateway: "Handsfree Audio Gateway",
	ServiceUUIDHumanInterfaceDevice:  "Human Interface Device",
	ServiceUUIDPnPInformation:        "PnP Information",
	ServiceUUIDGenericAudio:          "Generic Audio",
}

// ServiceName returns the name of a well-known service, or an empty string.
func ServiceName(uuid UUID) string {
	return serviceNames[uuid]
}
