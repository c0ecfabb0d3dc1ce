// Package winbt provides a thin layer over the classic Win32 Bluetooth API
// exported by bthprops.cpl. It is not designed to be used directly by
// applications: the bluetooth package wraps the API exposed here in a nice
// platform-independent way.
//
// The struct layouts and function signatures are taken from bluetoothapis.h,
// which you can find after installing the Windows SDK in a directory like
// this:
//
//	C:\Program Files (x86)\Windows Kits\10\Include\10.0.19041.0\um
//
// Some helpful documentation:
// https://learn.microsoft.com/en-us/windows/win32/api/bluetoothapis/
// https://learn.microsoft.com/en-us/windows-hardware/drivers/bluetooth/bluetooth-faq
package winbt // import "github.com/audioswitcher/bluetooth/winbt"

import "errors"

// ErrNoMoreItems is returned when a search cursor has been exhausted, or when
// a search found nothing at all (ERROR_NO_MORE_ITEMS).
var ErrNoMoreItems = errors.New("winbt: no more items")

// Handle is an opaque Win32 handle: a radio handle, or one of the search
// cursors returned by the BluetoothFindFirst* calls.
type Handle uintptr

// BOOL is the 32-bit Win32 boolean.
type BOOL int32

// Bool returns whether b is non-zero.
func (b BOOL) Bool() bool {
	return b != 0
}

// BoolToBOOL converts a Go bool into a Win32 BOOL.
func BoolToBOOL(b bool) BOOL {
	if b {
		return 1
	}
	return 0
}
