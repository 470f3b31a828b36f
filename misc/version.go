// Package misc keeps build time information about the program.
package misc

// Set by the linker: -ldflags "-X navsync/misc.version=... -X navsync/misc.gitHash=..."
var (
	appName = "navsync"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
