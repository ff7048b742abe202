package version

import "testing"

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	// Default value should be "unknown" until set by build
	if Version != "unknown" {
		t.Logf("Version is: %s (expected 'unknown' or version set via ldflags)", Version)
	}
}

func TestString(t *testing.T) {
	origVersion, origCommit, origTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origTime
	})

	Version, GitCommit, BuildTime = "v1.2.3", "unknown", "unknown"
	if got := String(); got != "v1.2.3" {
		t.Fatalf("String() = %q, want %q", got, "v1.2.3")
	}

	GitCommit, BuildTime = "abc123", "2026-01-02"
	if got := String(); got != "v1.2.3 (commit abc123, built 2026-01-02)" {
		t.Fatalf("String() = %q", got)
	}
}
