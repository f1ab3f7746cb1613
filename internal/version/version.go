package version

import "runtime"

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X clientbook/internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	Commit    = ""
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	GoVersion string `json:"goVersion"`
}

func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String is the one-line form printed by the CLI.
func (i Info) String() string {
	s := "clientbook " + i.Version
	if i.Commit != "" {
		s += " (" + i.Commit + ")"
	}
	return s
}
