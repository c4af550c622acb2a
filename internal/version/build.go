// Handles exposing and determining application version details
package version

import (
	"fmt"
	"runtime"

	"github.com/anchore/kubeview-client/internal"
)

const valueNotProvided = "[not provided]"

// set at build time with -ldflags "-X github.com/anchore/kubeview-client/internal/version.version=1.2.3"
var version = valueNotProvided
var gitCommit = valueNotProvided
var buildDate = valueNotProvided
var platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)

type Version struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

// FromBuild returns the version details injected during the build (or the defaults)
func FromBuild() Version {
	return Version{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  platform,
	}
}

// UserAgent is sent with every request made to the kubeview API
func UserAgent() string {
	v := version
	if v == valueNotProvided {
		v = "dev"
	}
	return fmt.Sprintf("%s-client/%s (%s)", internal.ApplicationName, v, platform)
}
