package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = saved[0], saved[1], saved[2] })

	tests := []struct {
		name       string
		preset     [3]string
		info       debug.BuildInfo
		wantVer    string
		wantCommit string
	}{
		{
			name:       "module version and vcs stamp",
			preset:     [3]string{"dev", "none", "unknown"},
			info:       debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}},
			wantVer:    "v0.3.0",
			wantCommit: "abc123",
		},
		{
			name:       "devel build keeps defaults",
			preset:     [3]string{"dev", "none", "unknown"},
			info:       debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVer:    "dev",
			wantCommit: "none",
		},
		{
			name:       "ldflags win",
			preset:     [3]string{"v1.0.0", "fff", "2026-01-01"},
			info:       debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}},
			wantVer:    "v1.0.0",
			wantCommit: "fff",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.preset[0], tt.preset[1], tt.preset[2]
			fromBuildInfo(&tt.info)
			if Version != tt.wantVer || Commit != tt.wantCommit {
				t.Errorf("got %s/%s, want %s/%s", Version, Commit, tt.wantVer, tt.wantCommit)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version ") || !strings.Contains(got, Commit) {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "version: "+Version) {
		t.Errorf("String() = %q", got)
	}
}
