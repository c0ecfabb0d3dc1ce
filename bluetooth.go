// Package bluetooth lists the Bluetooth radio of the system and the devices
// it knows about: paired, remembered, connected, or in range.
//
// It targets the classic (BR/EDR) device list as kept by the operating system.
// On Windows this is the Win32 Bluetooth API (see the winbt package), on Linux
// it is BlueZ over D-Bus. Other platforms return ErrUnsupported.
//
// The devices are plain values, a snapshot of what the OS reported:
//
//	radio, err := bluetooth.OpenRadio()
//	if err != nil {
//		return err
//	}
//	defer radio.Close()
//	devices, err := radio.Devices(bluetooth.DefaultSearchOptions())
package bluetooth // import "github.com/audioswitcher/bluetooth"
