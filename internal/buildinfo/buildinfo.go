// Package buildinfo carries the values stamped in with
// -ldflags "-X pongos/internal/buildinfo.Version=...".
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version if stamped, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String is the full banner used in the boot log.
func String() string {
	return "pongos " + Short() + " (" + Commit + ", " + Date + ")"
}
