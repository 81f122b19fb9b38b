package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()

	if Ping() != DefaultPing {
		t.Errorf("Ping: got %v, want %v", Ping(), DefaultPing)
	}
	if Short() != DefaultShort {
		t.Errorf("Short: got %v, want %v", Short(), DefaultShort)
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium: got %v, want %v", Medium(), DefaultMedium)
	}
	if Long() != DefaultLong {
		t.Errorf("Long: got %v, want %v", Long(), DefaultLong)
	}
}

func TestConfigure(t *testing.T) {
	defer Reset()

	Configure(Config{Short: 10 * time.Second})

	if Short() != 10*time.Second {
		t.Errorf("Short: got %v, want %v", Short(), 10*time.Second)
	}
	// Unset values keep their defaults.
	if Medium() != DefaultMedium {
		t.Errorf("Medium: got %v, want %v", Medium(), DefaultMedium)
	}
}

func TestConfigure_ZeroIgnored(t *testing.T) {
	defer Reset()

	Configure(Config{Short: 7 * time.Second})
	Configure(Config{}) // all zero, nothing changes

	if Short() != 7*time.Second {
		t.Errorf("Short: got %v, want %v", Short(), 7*time.Second)
	}
}
