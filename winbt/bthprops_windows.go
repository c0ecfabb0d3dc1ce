package winbt

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	modbthprops = windows.NewLazySystemDLL("bthprops.cpl")

	procBluetoothFindFirstRadio             = modbthprops.NewProc("BluetoothFindFirstRadio")
	procBluetoothFindRadioClose             = modbthprops.NewProc("BluetoothFindRadioClose")
	procBluetoothGetRadioInfo               = modbthprops.NewProc("BluetoothGetRadioInfo")
	procBluetoothFindFirstDevice            = modbthprops.NewProc("BluetoothFindFirstDevice")
	procBluetoothFindNextDevice             = modbthprops.NewProc("BluetoothFindNextDevice")
	procBluetoothFindDeviceClose            = modbthprops.NewProc("BluetoothFindDeviceClose")
	procBluetoothEnumerateInstalledServices = modbthprops.NewProc("BluetoothEnumerateInstalledServices")
	procBluetoothSetServiceState            = modbthprops.NewProc("BluetoothSetServiceState")
)

// dwServiceFlags values for BluetoothSetServiceState.
const (
	bluetoothServiceDisable uint32 = 0x00
	bluetoothServiceEnable  uint32 = 0x01
)

// errnoErr turns the last error of a call that reported failure into a Go
// error. Some calls report failure without setting a last error, in which
// case EINVAL is returned.
func errnoErr(e syscall.Errno) error {
	switch e {
	case 0:
		return syscall.EINVAL
	case windows.ERROR_NO_MORE_ITEMS:
		return ErrNoMoreItems
	}
	return e
}

// dwordErr converts a DWORD status code (as returned by the calls that don't
// use SetLastError) into a Go error.
func dwordErr(r uintptr) error {
	if r == uintptr(windows.ERROR_SUCCESS) {
		return nil
	}
	return errnoErr(syscall.Errno(r))
}

// FindFirstRadio starts the enumeration of the local radios. The returned
// search cursor must be closed with FindRadioClose, the radio handle with
// CloseHandle.
func FindFirstRadio(params *FindRadioParams, radio *Handle) (Handle, error) {
	r0, _, e1 := syscall.SyscallN(procBluetoothFindFirstRadio.Addr(),
		uintptr(unsafe.Pointer(params)),
		uintptr(unsafe.Pointer(radio)))
	if r0 == 0 {
		return 0, errnoErr(e1)
	}
	return Handle(r0), nil
}

// FindRadioClose closes a radio search cursor.
func FindRadioClose(find Handle) error {
	r0, _, e1 := syscall.SyscallN(procBluetoothFindRadioClose.Addr(), uintptr(find))
	if r0 == 0 {
		return errnoErr(e1)
	}
	return nil
}

// GetRadioInfo fills in info for the given radio. info.Size must be set, use
// NewRadioInfo.
func GetRadioInfo(radio Handle, info *RadioInfo) error {
	r0, _, _ := syscall.SyscallN(procBluetoothGetRadioInfo.Addr(),
		uintptr(radio),
		uintptr(unsafe.Pointer(info)))
	return dwordErr(r0)
}

// FindFirstDevice starts a device search and fills in the first result. When
// the search finds nothing, ErrNoMoreItems is returned.
func FindFirstDevice(params *DeviceSearchParams, info *DeviceInfo) (Handle, error) {
	r0, _, e1 := syscall.SyscallN(procBluetoothFindFirstDevice.Addr(),
		uintptr(unsafe.Pointer(params)),
		uintptr(unsafe.Pointer(info)))
	if r0 == 0 {
		return 0, errnoErr(e1)
	}
	return Handle(r0), nil
}

// FindNextDevice advances the device search cursor. ErrNoMoreItems signals
// the end of the search.
func FindNextDevice(find Handle, info *DeviceInfo) error {
	r0, _, e1 := syscall.SyscallN(procBluetoothFindNextDevice.Addr(),
		uintptr(find),
		uintptr(unsafe.Pointer(info)))
	if r0 == 0 {
		return errnoErr(e1)
	}
	return nil
}

// FindDeviceClose closes a device search cursor.
func FindDeviceClose(find Handle) error {
	r0, _, e1 := syscall.SyscallN(procBluetoothFindDeviceClose.Addr(), uintptr(find))
	if r0 == 0 {
		return errnoErr(e1)
	}
	return nil
}

// maxServiceQueries bounds the number of count-then-fill rounds when the
// service list keeps changing between both calls.
const maxServiceQueries = 4

// EnumerateInstalledServices returns the service class GUIDs enabled on the
// given device.
func EnumerateInstalledServices(radio Handle, info *DeviceInfo) ([]ole.GUID, error) {
	return enumerateServices(func(count *uint32, guids *ole.GUID) uintptr {
		r0, _, _ := syscall.SyscallN(procBluetoothEnumerateInstalledServices.Addr(),
			uintptr(radio),
			uintptr(unsafe.Pointer(info)),
			uintptr(unsafe.Pointer(count)),
			uintptr(unsafe.Pointer(guids)))
		return r0
	})
}

// enumerateServices first asks call for the number of services, then fetches
// them. The list may grow between both calls, in which case ERROR_MORE_DATA
// is returned and we try again with the new count.
func enumerateServices(call func(count *uint32, guids *ole.GUID) uintptr) ([]ole.GUID, error) {
	for i := 0; i < maxServiceQueries; i++ {
		var count uint32
		r0 := call(&count, nil)
		if err := dwordErr(r0); err != nil && syscall.Errno(r0) != windows.ERROR_MORE_DATA {
			return nil, err
		}
		if count == 0 {
			return nil, nil
		}

		guids := make([]ole.GUID, count)
		r0 = call(&count, &guids[0])
		if syscall.Errno(r0) == windows.ERROR_MORE_DATA {
			continue
		}
		if err := dwordErr(r0); err != nil {
			return nil, err
		}
		if int(count) > len(guids) {
			count = uint32(len(guids))
		}
		return guids[:count], nil
	}
	return nil, fmt.Errorf("winbt: service list kept changing after %d attempts: %w", maxServiceQueries, windows.ERROR_MORE_DATA)
}

// SetServiceState enables or disables a service on a device. Enabling an
// audio service is what makes Windows install the matching audio endpoint.
func SetServiceState(radio Handle, info *DeviceInfo, service *ole.GUID, enable bool) error {
	flags := bluetoothServiceDisable
	if enable {
		flags = bluetoothServiceEnable
	}
	r0, _, _ := syscall.SyscallN(procBluetoothSetServiceState.Addr(),
		uintptr(radio),
		uintptr(unsafe.Pointer(info)),
		uintptr(unsafe.Pointer(service)),
		uintptr(flags))
	return dwordErr(r0)
}

// CloseHandle closes a radio handle.
func CloseHandle(h Handle) error {
	return windows.CloseHandle(windows.Handle(h))
}
