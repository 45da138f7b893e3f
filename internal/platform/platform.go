package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// OS is the operating system family a posture check branches on.
type OS int

const (
	Linux OS = iota
	MacOS
	Windows
)

// All lists every supported family in a stable order.
var All = []OS{MacOS, Windows, Linux}

func (o OS) String() string {
	switch o {
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	default:
		return "linux"
	}
}

// MarshalText lets the family appear by name in JSON and YAML reports.
func (o OS) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Detect returns the family of the running host. Anything that is neither
// darwin nor windows is treated as Linux-like.
func Detect() OS {
	return FromGOOS(runtime.GOOS)
}

func FromGOOS(goos string) OS {
	switch goos {
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	default:
		return Linux
	}
}

// Parse resolves a user-supplied platform name.
func Parse(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "darwin", "macos", "mac":
		return MacOS, nil
	case "windows", "win":
		return Windows, nil
	case "linux", "other":
		return Linux, nil
	default:
		return Linux, fmt.Errorf("unknown platform %q", s)
	}
}

// Resolve returns the parsed override, or the detected host family when
// the override is empty.
func Resolve(override string) (OS, error) {
	if strings.TrimSpace(override) == "" {
		return Detect(), nil
	}
	return Parse(override)
}

// ScreenLockUnit is the unit screen-lock timeouts are reported in.
func (o OS) ScreenLockUnit() string {
	if o == Linux {
		return "seconds"
	}
	return "minutes"
}
