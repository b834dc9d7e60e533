package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDataDir(t *testing.T) {
	sandbox := filepath.Join(os.TempDir(), devDirName)
	inTemp := t.TempDir()

	tests := []struct {
		name      string
		userPath  string
		forceTemp bool
		want      string
	}{
		{name: "no force keeps path", userPath: "/srv/notes", want: "/srv/notes"},
		{name: "no force empty path", userPath: "", want: "."},
		{name: "force re-roots absolute path", userPath: "/srv/notes", forceTemp: true, want: filepath.Join(sandbox, "notes")},
		{name: "force re-roots relative path", userPath: "data", forceTemp: true, want: filepath.Join(sandbox, "data")},
		{name: "force empty path", userPath: "", forceTemp: true, want: filepath.Join(sandbox, "default")},
		{name: "force dot path", userPath: ".", forceTemp: true, want: filepath.Join(sandbox, "default")},
		{name: "temp path is trusted", userPath: inTemp, forceTemp: true, want: inTemp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDataDir(tt.userPath, tt.forceTemp))
		})
	}
}

func TestIsDevRun_UnderGoTest(t *testing.T) {
	assert.True(t, IsDevRun())
}
