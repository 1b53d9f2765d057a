// SPDX-License-Identifier: MIT
package build

import "testing"

func TestInitializeMissingFlags(t *testing.T) {
	// ldflags are unset under `go test`, so Initialize must refuse.
	if err := Initialize(); err == nil {
		t.Error("expected error when build flags are unset, got nil")
	}
}

func TestGetBuildFlagsDefaults(t *testing.T) {
	flags := GetBuildFlags()
	if flags == nil {
		t.Fatal("GetBuildFlags() returned nil")
	}
	if flags.Name == "" || flags.Version == "" {
		t.Errorf("expected development defaults, got %+v", flags)
	}
}

func TestInitializePopulatesFlags(t *testing.T) {
	buildName = "dwflag"
	buildTime = "2026-01-01T00:00:00Z"
	buildCommit = "abc1234"
	buildVersion = "0.1.0"
	t.Cleanup(func() {
		buildName, buildTime, buildCommit, buildVersion = "", "", "", ""
	})

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	flags := GetBuildFlags()
	if flags.Name != "dwflag" || flags.Version != "0.1.0" {
		t.Errorf("GetBuildFlags() = %+v, want populated values", flags)
	}
}
