package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the tool version, overridden at build time with
// -ldflags "-X github.com/fosrl/posture/internal/version.Version=..."
var Version = "0.1.0"

// MinimumEngineVersion is the oldest osquery release whose tables cover
// every query the checks issue.
const MinimumEngineVersion = "4.0.0"

var engineVersionRegex = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.\-+]*)?)`)

// normalizeVersion removes 'v' prefix from version string if present
func normalizeVersion(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// CompareVersions compares two versions
// Returns:
// - -1 if current < minimum
// - 0 if current == minimum
// - 1 if current > minimum
// - error if versions cannot be parsed
func CompareVersions(current, minimum string) (int, error) {
	currentVer, err := semver.NewVersion(normalizeVersion(current))
	if err != nil {
		return 0, fmt.Errorf("failed to parse current version %s: %w", current, err)
	}

	minimumVer, err := semver.NewVersion(normalizeVersion(minimum))
	if err != nil {
		return 0, fmt.Errorf("failed to parse minimum version %s: %w", minimum, err)
	}

	return currentVer.Compare(minimumVer), nil
}

// ParseEngineVersion extracts the version from `osqueryi --version`
// output such as "osqueryi version 5.12.1".
func ParseEngineVersion(output string) (*semver.Version, error) {
	match := engineVersionRegex.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version found in %q", strings.TrimSpace(output))
	}

	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, fmt.Errorf("failed to parse engine version %s: %w", match, err)
	}
	return v, nil
}

// EngineSupported reports whether the engine version is at least
// MinimumEngineVersion.
func EngineSupported(v *semver.Version) bool {
	cmp, err := CompareVersions(v.String(), MinimumEngineVersion)
	return err == nil && cmp >= 0
}
