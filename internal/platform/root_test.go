package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectConfig(t *testing.T) {
	// baseDir/
	//   project/ (.localnotes.json)
	//     subdir/
	//       nested/
	//   empty/
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	subDir := filepath.Join(projectDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	require.NoError(t, os.MkdirAll(nestedDir, 0o755))
	require.NoError(t, os.MkdirAll(emptyDir, 0o755))

	marker := filepath.Join(projectDir, ProjectConfigName)
	require.NoError(t, os.WriteFile(marker, []byte("{}"), 0o644))

	tests := []struct {
		name      string
		startPath string
		want      string
		wantErr   bool
	}{
		{name: "Start at Project", startPath: projectDir, want: marker},
		{name: "Start in Subdir", startPath: subDir, want: marker},
		{name: "Start in Nested", startPath: nestedDir, want: marker},
		{name: "No Config Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindProjectConfig(tt.startPath)
			if tt.wantErr {
				// A stray config above the temp dir would make this flaky.
				if err == nil {
					t.Skipf("found config outside test tree: %s", got)
				}
				assert.ErrorIs(t, err, ErrNoProjectConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindProjectConfig_IgnoresDirectories(t *testing.T) {
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, ProjectConfigName), 0o755))

	got, err := FindProjectConfig(projectDir)
	if err == nil {
		assert.NotEqual(t, filepath.Join(projectDir, ProjectConfigName), got)
	}
}
