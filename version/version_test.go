package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("expected a version, even in dev builds")
	}
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"no commit", Info{Version: "dev"}, "dev"},
		{"short commit", Info{Version: "1.2.0", GitCommit: "abc123"}, "1.2.0 (abc123)"},
		{"long commit truncated", Info{Version: "1.2.0", GitCommit: "0123456789abcdef0123"}, "1.2.0 (0123456789ab)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInfo_StringIsSingleLine(t *testing.T) {
	if strings.Contains(Get().String(), "\n") {
		t.Error("version string must be single-line")
	}
}
