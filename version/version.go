// Package version holds build information set via -ldflags.
//
//	go build -ldflags "-X github.com/jackzampolin/langextract/version.GitRelease=v0.1.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag.
	GitRelease = "dev"
	// GitCommit is the commit hash.
	GitCommit = "unknown"
	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"
	// GoInfo is the Go version and platform the binary was built with.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

// UserAgent is sent on every request to the extraction backend.
func UserAgent() string {
	return "langextract/" + GitRelease
}
