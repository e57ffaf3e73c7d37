// SPDX-License-Identifier: MIT
//
// Package build exposes the name, version, commit and build time embedded
// into the spectro binary at link time, for example:
//
//	go build -ldflags "-X spectro/pkg/build.buildName=spectro \
//	  -X spectro/pkg/build.buildVersion=0.2.0 ..."
//
// Development builds run without ldflags; Initialize reports which flag is
// missing and the defaults ("dev"/"unknown") stay in place.
package build

import (
	"errors"
	"fmt"
)

// ErrMissingFlag is returned by Initialize when an ldflag was not injected.
var ErrMissingFlag = errors.New("build flag not set")

type ldFlags struct {
	Name    string
	Time    string
	Commit  string
	Version string
}

var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = defaultFlags()
)

func defaultFlags() *ldFlags {
	return &ldFlags{
		Name:    "spectro",
		Time:    "unknown",
		Commit:  "unknown",
		Version: "dev",
	}
}

// Initialize copies the ldflags variables into the build info. Values are
// applied field by field, so a partially stamped build keeps what it has;
// the first missing flag is reported as an ErrMissingFlag.
func Initialize() error {
	var missing error
	set := func(dst *string, val, name string) {
		if val == "" {
			if missing == nil {
				missing = fmt.Errorf("%w: %s", ErrMissingFlag, name)
			}
			return
		}
		*dst = val
	}

	set(&buildFlags.Name, buildName, "BuildName")
	set(&buildFlags.Time, buildTime, "BuildTime")
	set(&buildFlags.Commit, buildCommit, "BuildCommit")
	set(&buildFlags.Version, buildVersion, "BuildVersion")

	return missing
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *ldFlags {
	return buildFlags
}

// VersionString is the one-line version shown by --version.
func (f *ldFlags) VersionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", f.Version, f.Commit, f.Time)
}
