package build

import "fmt"

// Overridden at link time with -ldflags "-X ..."
var (
	ShortVersion   = "dev"
	ProjectVersion = ""
	GitRef         = ""
	BuildDate      = ""
)

var LongVersion = longVersion()

func longVersion() string {
	if GitRef == "" && BuildDate == "" {
		return ShortVersion
	}

	return fmt.Sprintf("%s (%s - %s)", ShortVersion, GitRef, BuildDate)
}
