// Package misc keeps small helpers needed across the program.
package misc

import "runtime/debug"

const appName = "slate"

// GetAppName returns the program name used for logger naming and temp files.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version recorded in build info, or "devel"
// for local builds.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}
