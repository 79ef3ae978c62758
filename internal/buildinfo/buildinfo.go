// Package buildinfo carries the build identity stamped in with -ldflags, e.g.
//
//	-ldflags "-X joysprite/internal/buildinfo.Version=v0.3.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the most specific identifier available: the release
// version, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long adds the build date to Short when it is known.
func Long() string {
	if Date == "" || Date == "unknown" {
		return Short()
	}
	return Short() + " (" + Date + ")"
}
