// Package version exposes the build version stamped into every log line.
package version

// Version is the application version. Overridable at build time via
// -ldflags "-X hubspot-bridge/core/version.Version=...".
var Version = "1.3.1"
