// Package version holds the build version, overridable at link time.
package version

// Version is the presswatch release version. Overridden via
// -ldflags "-X github.com/sydlexius/presswatch/internal/version.Version=...".
var Version = "dev"
