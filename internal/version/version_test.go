package version

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	t.Parallel()
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("got %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()
	info := Resolve()
	if info.Version == "" {
		t.Fatal("version must never be empty")
	}
	if !strings.HasPrefix(info.GoVersion, "go") && !strings.HasPrefix(info.GoVersion, "devel") {
		t.Fatalf("go version got %q", info.GoVersion)
	}
	if !strings.HasPrefix(String(), info.Version) {
		t.Fatalf("String() = %q, want prefix %q", String(), info.Version)
	}
}
