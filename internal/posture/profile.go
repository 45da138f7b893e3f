package posture

import "github.com/fosrl/posture/internal/platform"

// EncryptionRule selects volumes whose status field parses to 1.
type EncryptionRule struct {
	Query string
	Field string
	Label string
}

// AntivirusRule lists queries tried in order until one returns rows.
// A FixedLabel is reported as-is; otherwise NameField of the first row is
// reported, or FallbackLabel when that field is empty or missing.
type AntivirusRule struct {
	Queries       []string
	FixedLabel    string
	NameField     string
	FallbackLabel string
}

// ScreenLockRule reads the first present field of the first row as a
// number of seconds and divides it by Divisor.
type ScreenLockRule struct {
	Query   string
	Fields  []string
	Divisor int64
}

// Profile is the per-platform query table for every check.
type Profile struct {
	OS             platform.OS
	DiskEncryption EncryptionRule
	Antivirus      AntivirusRule
	ScreenLock     ScreenLockRule
}

var profiles = map[platform.OS]Profile{
	platform.MacOS: {
		OS: platform.MacOS,
		DiskEncryption: EncryptionRule{
			Query: "SELECT * FROM disk_encryption;",
			Field: "encrypted",
			Label: "FileVault",
		},
		Antivirus: AntivirusRule{
			Queries: []string{
				"SELECT * FROM xprotect_entries;",
				"SELECT * FROM xprotect_meta;",
				"SELECT * FROM launchd WHERE name LIKE '%com.apple.MRT%' OR name LIKE '%com.apple.XProtect%';",
				"SELECT * FROM processes WHERE name LIKE '%MRT%' OR name LIKE '%XProtect%';",
			},
			FixedLabel: "XProtect/MRT (Built-in macOS protection)",
		},
		ScreenLock: ScreenLockRule{
			Query:   "SELECT value FROM preferences WHERE domain = 'com.apple.screensaver' AND key = 'idleTime';",
			Fields:  []string{"value"},
			Divisor: 60,
		},
	},
	platform.Windows: {
		OS: platform.Windows,
		DiskEncryption: EncryptionRule{
			Query: "SELECT * FROM bitlocker_info;",
			Field: "encryption_status",
			Label: "BitLocker",
		},
		Antivirus: AntivirusRule{
			Queries:       []string{"SELECT * FROM windows_security_products;"},
			NameField:     "display_name",
			FallbackLabel: "Windows Antivirus",
		},
		ScreenLock: ScreenLockRule{
			Query: `SELECT data FROM registry WHERE path = 'HKEY_LOCAL_MACHINE\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System\InactivityTimeoutSecs';`,
			// The registry table names its value column "data", which the
			// query selects. Reading only "value" would never find a timeout.
			Fields:  []string{"data", "value"},
			Divisor: 60,
		},
	},
	platform.Linux: {
		OS: platform.Linux,
		DiskEncryption: EncryptionRule{
			Query: "SELECT * FROM disk_encryption;",
			Field: "encrypted",
			Label: "LUKS",
		},
		Antivirus: AntivirusRule{
			Queries:       []string{"SELECT name FROM processes WHERE name LIKE '%antivirus%' OR name LIKE '%anti-virus%';"},
			NameField:     "name",
			FallbackLabel: "Unknown Antivirus",
		},
		ScreenLock: ScreenLockRule{
			// GNOME stores idle-delay in seconds.
			Query:   "SELECT value FROM preferences WHERE domain = 'org.gnome.desktop.session' AND key = 'idle-delay';",
			Fields:  []string{"value"},
			Divisor: 1,
		},
	},
}

// ProfileFor returns the query table for os.
func ProfileFor(os platform.OS) Profile {
	if p, ok := profiles[os]; ok {
		return p
	}
	return profiles[platform.Linux]
}
