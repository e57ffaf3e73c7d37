// SPDX-License-Identifier: MIT
package build

import (
	"errors"
	"os"
	"strings"
	"testing"
)

var (
	origName    string
	origTime    string
	origCommit  string
	origVersion string
	origFlags   ldFlags
)

func TestMain(m *testing.M) {
	origName = buildName
	origTime = buildTime
	origCommit = buildCommit
	origVersion = buildVersion
	origFlags = *buildFlags

	exitCode := m.Run()

	buildName = origName
	buildTime = origTime
	buildCommit = origCommit
	buildVersion = origVersion
	*buildFlags = origFlags

	os.Exit(exitCode)
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		buildName   string
		buildTime   string
		buildCommit string
		buildVer    string
		wantMissing string
	}{
		{"Missing BuildName", "", "2025-04-13", "abcdef123", "v1.0.0", "BuildName"},
		{"Missing BuildTime", "spectro", "", "abcdef123", "v1.0.0", "BuildTime"},
		{"Missing BuildCommit", "spectro", "2025-04-13", "", "v1.0.0", "BuildCommit"},
		{"Missing BuildVersion", "spectro", "2025-04-13", "abcdef123", "", "BuildVersion"},
		{"Success Case", "spectro", "2025-04-13", "abcdef123", "v1.0.0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buildFlags = defaultFlags()
			buildName = tt.buildName
			buildTime = tt.buildTime
			buildCommit = tt.buildCommit
			buildVersion = tt.buildVer

			err := Initialize()

			if tt.wantMissing != "" {
				if !errors.Is(err, ErrMissingFlag) {
					t.Fatalf("Initialize() error = %v, want ErrMissingFlag", err)
				}
				if !strings.Contains(err.Error(), tt.wantMissing) {
					t.Errorf("Initialize() error = %v, want mention of %s", err, tt.wantMissing)
				}
				return
			}

			if err != nil {
				t.Fatalf("Initialize() unexpected error: %v", err)
			}
			if buildFlags.Version != tt.buildVer {
				t.Errorf("buildFlags.Version = %v, want %v", buildFlags.Version, tt.buildVer)
			}
			if buildFlags.Commit != tt.buildCommit {
				t.Errorf("buildFlags.Commit = %v, want %v", buildFlags.Commit, tt.buildCommit)
			}
		})
	}
}

func TestInitializeKeepsDefaultsForMissingFlags(t *testing.T) {
	buildFlags = defaultFlags()
	buildName = "spectro"
	buildTime = ""
	buildCommit = "abc"
	buildVersion = ""

	_ = Initialize()

	if buildFlags.Version != "dev" {
		t.Errorf("Version = %q, want default %q", buildFlags.Version, "dev")
	}
	if buildFlags.Commit != "abc" {
		t.Errorf("Commit = %q, want %q", buildFlags.Commit, "abc")
	}
}

func TestVersionString(t *testing.T) {
	buildFlags = &ldFlags{Name: "spectro", Time: "2025-04-13", Commit: "abcdef123", Version: "v1.0.0"}

	got := GetBuildFlags().VersionString()
	want := "v1.0.0 (commit abcdef123, built 2025-04-13)"
	if got != want {
		t.Errorf("VersionString() = %q, want %q", got, want)
	}
}
