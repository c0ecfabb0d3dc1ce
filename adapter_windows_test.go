package bluetooth

import (
	"errors"
	"testing"

	"github.com/audioswitcher/bluetooth/winbt"
)

const (
	radioHandle        = "radio"
	radioSearchHandle  = "radio search"
	deviceSearchHandle = "device search"
)

// fakeStack stands in for bthprops.cpl. It hands out handles, remembers
// which ones are open and fails the test when a handle is closed twice or
// closed as the wrong kind.
type fakeStack struct {
	t       *testing.T
	next    winbt.Handle
	open    map[winbt.Handle]string
	closes  map[string]int
	devices []*winbt.DeviceInfo
	pos     int
	params  winbt.DeviceSearchParams

	findFirstRadioErr  error
	findRadioCloseErr  error
	getRadioInfoErr    error
	findFirstDeviceErr error
	findNextDeviceErr  error
	findDeviceCloseErr error
	closeHandleErr     error
}

func newFakeStack(t *testing.T) *fakeStack {
	s := &fakeStack{
		t:      t,
		open:   map[winbt.Handle]string{},
		closes: map[string]int{},
	}

	origFindFirstRadio, origFindRadioClose, origGetRadioInfo := findFirstRadio, findRadioClose, getRadioInfo
	origFindFirstDevice, origFindNextDevice, origFindDeviceClose := findFirstDevice, findNextDevice, findDeviceClose
	origCloseHandle := closeHandle
	t.Cleanup(func() {
		findFirstRadio, findRadioClose, getRadioInfo = origFindFirstRadio, origFindRadioClose, origGetRadioInfo
		findFirstDevice, findNextDevice, findDeviceClose = origFindFirstDevice, origFindNextDevice, origFindDeviceClose
		closeHandle = origCloseHandle
	})

	findFirstRadio = func(params *winbt.FindRadioParams, radio *winbt.Handle) (winbt.Handle, error) {
		if s.findFirstRadioErr != nil {
			return 0, s.findFirstRadioErr
		}
		*radio = s.handle(radioHandle)
		return s.handle(radioSearchHandle), nil
	}
	findRadioClose = func(h winbt.Handle) error {
		s.release(h, radioSearchHandle)
		return s.findRadioCloseErr
	}
	getRadioInfo = func(h winbt.Handle, info *winbt.RadioInfo) error {
		if s.open[h] != radioHandle {
			t.Errorf("radio info requested for handle %d which is not an open radio", h)
		}
		if s.getRadioInfoErr != nil {
			return s.getRadioInfoErr
		}
		for i, c := range "Test radio" {
			info.Name[i] = uint16(c)
		}
		return nil
	}
	findFirstDevice = func(params *winbt.DeviceSearchParams, info *winbt.DeviceInfo) (winbt.Handle, error) {
		s.params = *params
		if s.findFirstDeviceErr != nil {
			return 0, s.findFirstDeviceErr
		}
		if len(s.devices) == 0 {
			return 0, winbt.ErrNoMoreItems
		}
		*info = *s.devices[0]
		s.pos = 1
		return s.handle(deviceSearchHandle), nil
	}
	findNextDevice = func(h winbt.Handle, info *winbt.DeviceInfo) error {
		if s.open[h] != deviceSearchHandle {
			t.Errorf("advancing handle %d which is not an open device search", h)
		}
		if s.findNextDeviceErr != nil {
			return s.findNextDeviceErr
		}
		if s.pos >= len(s.devices) {
			return winbt.ErrNoMoreItems
		}
		*info = *s.devices[s.pos]
		s.pos++
		return nil
	}
	findDeviceClose = func(h winbt.Handle) error {
		s.release(h, deviceSearchHandle)
		return s.findDeviceCloseErr
	}
	closeHandle = func(h winbt.Handle) error {
		s.release(h, radioHandle)
		return s.closeHandleErr
	}
	return s
}

func (s *fakeStack) handle(kind string) winbt.Handle {
	s.next++
	s.open[s.next] = kind
	return s.next
}

func (s *fakeStack) release(h winbt.Handle, kind string) {
	if s.open[h] != kind {
		s.t.Errorf("closing %s handle %d which is not open (open: %v)", kind, h, s.open)
	}
	delete(s.open, h)
	s.closes[kind]++
}

func (s *fakeStack) checkReleased() {
	s.t.Helper()
	if len(s.open) != 0 {
		s.t.Errorf("handles left open: %v", s.open)
	}
}

func TestOpenRadioReleasesSearch(t *testing.T) {
	s := newFakeStack(t)
	r, err := OpenRadio()
	if err != nil {
		t.Fatalf("could not open radio: %v", err)
	}
	if r.Name != "Test radio" {
		t.Errorf("expected radio name %q but got %q", "Test radio", r.Name)
	}
	if s.closes[radioSearchHandle] != 1 {
		t.Errorf("expected the radio search to be closed once but it was closed %d times", s.closes[radioSearchHandle])
	}
	if len(s.open) != 1 {
		t.Errorf("expected only the radio handle to stay open but got %v", s.open)
	}

	if err := r.Close(); err != nil {
		t.Errorf("could not close radio: %v", err)
	}
	if err := r.Close(); err != ErrClosed {
		t.Errorf("expected ErrClosed but got %v", err)
	}
	if s.closes[radioHandle] != 1 {
		t.Errorf("expected the radio to be closed once but it was closed %d times", s.closes[radioHandle])
	}
	s.checkReleased()
}

func TestOpenRadioNoRadio(t *testing.T) {
	s := newFakeStack(t)
	s.findFirstRadioErr = winbt.ErrNoMoreItems
	if _, err := OpenRadio(); err != ErrNoRadiosFound {
		t.Errorf("expected ErrNoRadiosFound but got %v", err)
	}
	if len(s.closes) != 0 {
		t.Errorf("expected nothing to be closed but got %v", s.closes)
	}
}

func TestOpenRadioFailureReleasesHandles(t *testing.T) {
	failure := errors.New("access denied")
	tests := []struct {
		name  string
		setup func(s *fakeStack)
	}{
		{"radio search close", func(s *fakeStack) { s.findRadioCloseErr = failure }},
		{"radio info", func(s *fakeStack) { s.getRadioInfoErr = failure }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newFakeStack(t)
			tc.setup(s)
			r, err := OpenRadio()
			if !errors.Is(err, failure) {
				t.Errorf("expected %v but got %v", failure, err)
			}
			if r != nil {
				t.Errorf("expected no radio but got %v", r)
			}
			if s.closes[radioHandle] != 1 {
				t.Errorf("expected the radio to be closed once but it was closed %d times", s.closes[radioHandle])
			}
			s.checkReleased()
		})
	}
}

func openFakeRadio(t *testing.T, s *fakeStack) *Radio {
	t.Helper()
	r, err := OpenRadio()
	if err != nil {
		t.Fatalf("could not open radio: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		s.checkReleased()
	})
	return r
}

func TestFindDevices(t *testing.T) {
	s := newFakeStack(t)
	s.devices = []*winbt.DeviceInfo{makeDeviceInfo("One"), makeDeviceInfo("Two"), makeDeviceInfo("Three")}
	r := openFakeRadio(t, s)

	devices, err := r.Devices(DefaultSearchOptions())
	if err != nil {
		t.Fatalf("could not list devices: %v", err)
	}
	if len(devices) != 3 || devices[0].Name != "One" || devices[2].Name != "Three" {
		t.Errorf("unexpected devices %v", devices)
	}
	if s.params.Radio != r.handle.handle {
		t.Errorf("expected a search on radio %d but got %d", r.handle.handle, s.params.Radio)
	}
	if s.closes[deviceSearchHandle] != 1 {
		t.Errorf("expected the device search to be closed once but it was closed %d times", s.closes[deviceSearchHandle])
	}
}

func TestFindDevicesNone(t *testing.T) {
	s := newFakeStack(t)
	r := openFakeRadio(t, s)
	if _, err := r.Devices(DefaultSearchOptions()); err != ErrNoDevicesFound {
		t.Errorf("expected ErrNoDevicesFound but got %v", err)
	}
	if s.closes[deviceSearchHandle] != 0 {
		t.Errorf("expected no device search to be closed but got %d", s.closes[deviceSearchHandle])
	}
}

func TestFindDevicesStartFailure(t *testing.T) {
	s := newFakeStack(t)
	s.findFirstDeviceErr = errors.New("device not ready")
	r := openFakeRadio(t, s)
	_, err := r.Devices(DefaultSearchOptions())
	if !errors.Is(err, s.findFirstDeviceErr) {
		t.Errorf("expected %v but got %v", s.findFirstDeviceErr, err)
	}
	if s.closes[deviceSearchHandle] != 0 {
		t.Errorf("expected no device search to be closed but got %d", s.closes[deviceSearchHandle])
	}
}

func TestFindDevicesNextFailure(t *testing.T) {
	s := newFakeStack(t)
	s.devices = []*winbt.DeviceInfo{makeDeviceInfo("One"), makeDeviceInfo("Two")}
	s.findNextDeviceErr = errors.New("device not ready")
	r := openFakeRadio(t, s)
	devices, err := r.Devices(DefaultSearchOptions())
	if !errors.Is(err, s.findNextDeviceErr) {
		t.Errorf("expected %v but got %v", s.findNextDeviceErr, err)
	}
	if devices != nil {
		t.Errorf("expected no devices but got %v", devices)
	}
	if s.closes[deviceSearchHandle] != 1 {
		t.Errorf("expected the device search to be closed once but it was closed %d times", s.closes[deviceSearchHandle])
	}
}

func TestFindDevicesCloseFailure(t *testing.T) {
	s := newFakeStack(t)
	s.devices = []*winbt.DeviceInfo{makeDeviceInfo("One")}
	s.findDeviceCloseErr = errors.New("invalid handle")
	r := openFakeRadio(t, s)
	if _, err := r.Devices(DefaultSearchOptions()); !errors.Is(err, s.findDeviceCloseErr) {
		t.Errorf("expected %v but got %v", s.findDeviceCloseErr, err)
	}
	if s.closes[deviceSearchHandle] != 1 {
		t.Errorf("expected the device search to be closed once but it was closed %d times", s.closes[deviceSearchHandle])
	}
}

func TestDevicesAllRadios(t *testing.T) {
	s := newFakeStack(t)
	s.devices = []*winbt.DeviceInfo{makeDeviceInfo("One")}
	devices, err := Devices(DefaultSearchOptions())
	if err != nil {
		t.Fatalf("could not list devices: %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("expected one device but got %v", devices)
	}
	if s.params.Radio != 0 {
		t.Errorf("expected a search on all radios but got radio %d", s.params.Radio)
	}
	s.checkReleased()
}

func TestRadioCloseFailure(t *testing.T) {
	s := newFakeStack(t)
	r, err := OpenRadio()
	if err != nil {
		t.Fatalf("could not open radio: %v", err)
	}
	s.closeHandleErr = errors.New("invalid handle")
	if err := r.Close(); !errors.Is(err, s.closeHandleErr) {
		t.Errorf("expected %v but got %v", s.closeHandleErr, err)
	}
	if err := r.Close(); err != ErrClosed {
		t.Errorf("expected ErrClosed but got %v", err)
	}
	if s.closes[radioHandle] != 1 {
		t.Errorf("expected the radio to be closed once but it was closed %d times", s.closes[radioHandle])
	}
}
