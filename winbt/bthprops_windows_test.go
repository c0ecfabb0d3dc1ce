package winbt

import (
	"errors"
	"testing"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var audioSink = ole.NewGUID("{0000110b-0000-1000-8000-00805f9b34fb}")

func TestEnumerateServices(t *testing.T) {
	calls := 0
	guids, err := enumerateServices(func(count *uint32, guids *ole.GUID) uintptr {
		calls++
		if guids == nil {
			*count = 1
			return uintptr(windows.ERROR_MORE_DATA)
		}
		if *count != 1 {
			t.Errorf("expected room for 1 service but got %d", *count)
		}
		*guids = *audioSink
		return 0
	})
	if err != nil {
		t.Fatalf("could not enumerate services: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls but got %d", calls)
	}
	if len(guids) != 1 || !ole.IsEqualGUID(&guids[0], audioSink) {
		t.Errorf("unexpected services %v", guids)
	}
}

func TestEnumerateServicesNone(t *testing.T) {
	guids, err := enumerateServices(func(count *uint32, guids *ole.GUID) uintptr {
		if guids != nil {
			t.Error("services fetched although there are none")
		}
		return 0
	})
	if err != nil || guids != nil {
		t.Errorf("expected no services but got %v, %v", guids, err)
	}
}

func TestEnumerateServicesFailure(t *testing.T) {
	_, err := enumerateServices(func(count *uint32, guids *ole.GUID) uintptr {
		return uintptr(windows.ERROR_INVALID_PARAMETER)
	})
	if !errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
		t.Errorf("expected ERROR_INVALID_PARAMETER but got %v", err)
	}
}

func TestEnumerateServicesGrowing(t *testing.T) {
	// The list grows between every count query and fill call.
	calls := 0
	n := uint32(0)
	_, err := enumerateServices(func(count *uint32, guids *ole.GUID) uintptr {
		calls++
		n++
		*count = n
		return uintptr(windows.ERROR_MORE_DATA)
	})
	if !errors.Is(err, windows.ERROR_MORE_DATA) {
		t.Errorf("expected ERROR_MORE_DATA but got %v", err)
	}
	if calls != 2*maxServiceQueries {
		t.Errorf("expected %d calls but got %d", 2*maxServiceQueries, calls)
	}
}

func TestEnumerateServicesCountTooLarge(t *testing.T) {
	// A count larger than the buffer on success must not overrun it.
	guids, err := enumerateServices(func(count *uint32, guids *ole.GUID) uintptr {
		if guids == nil {
			*count = 2
			return uintptr(windows.ERROR_MORE_DATA)
		}
		*count = 5
		return 0
	})
	if err != nil {
		t.Fatalf("could not enumerate services: %v", err)
	}
	if len(guids) != 2 {
		t.Errorf("expected 2 services but got %d", len(guids))
	}
}
