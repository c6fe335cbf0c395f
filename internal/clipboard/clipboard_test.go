package clipboard

import "testing"

func TestIsAvailable(t *testing.T) {
	// Availability depends on the system; just verify consistency with
	// the command lookup.
	if IsAvailable() != (copyCommand() != nil) {
		t.Error("IsAvailable() disagrees with copyCommand()")
	}
}

func TestCopy(t *testing.T) {
	if !IsAvailable() {
		if err := Copy("text"); err != ErrClipboardUnavailable {
			t.Errorf("Copy() error = %v, want ErrClipboardUnavailable", err)
		}
		return
	}

	if err := Copy("au=Sherry Turkle ti=Alone Together d=2011"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if err := Copy(""); err != nil {
		t.Fatalf("Copy of empty string error = %v", err)
	}
}
