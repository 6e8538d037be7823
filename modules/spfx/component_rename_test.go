package spfx

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/praetorian-inc/m365/modules/options"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yoRc = `{
  "@microsoft/generator-sharepoint": {
    "libraryName": "old-name",
    "libraryId": "5b3c6b1c-1b0e-4d4a-8f60-0a5bd5c1b8f1",
    "version": "1.18.0"
  }
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, yoRcFile), yoRc)
	writeFile(t, filepath.Join(root, packageJSON), `{"name": "old-name", "version": "0.0.1", "private": true}`)
	return root
}

func opt(def types.Option, value string) *types.Option {
	def.Value = value
	return &def
}

func TestFindProjectRoot(t *testing.T) {
	root := newProject(t)
	nested := filepath.Join(root, "src", "webparts", "hello")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	found, err = FindProjectRoot(root)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestFindProjectRootMissing(t *testing.T) {
	_, err := FindProjectRoot(t.TempDir())
	require.Error(t, err)
	assert.True(t, m365errors.IsNotFound(err))
	assert.Equal(t, "Couldn't find project root folder", err.Error())
}

func TestRenamePackage(t *testing.T) {
	root := newProject(t)

	changed, err := RenamePackage(root, "new-name")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "{\n  \"name\": \"new-name\",\n  \"private\": true,\n  \"version\": \"0.0.1\"\n}",
		readFile(t, filepath.Join(root, packageJSON)))

	changed, err = RenamePackage(root, "new-name")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRenamePackageSkips(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		root := t.TempDir()
		changed, err := RenamePackage(root, "new-name")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.NoFileExists(t, filepath.Join(root, packageJSON))
	})

	t.Run("no name", func(t *testing.T) {
		root := t.TempDir()
		original := `{"version": "0.0.1"}`
		writeFile(t, filepath.Join(root, packageJSON), original)

		changed, err := RenamePackage(root, "new-name")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, original, readFile(t, filepath.Join(root, packageJSON)))
	})

	t.Run("invalid json", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, packageJSON), `{`)

		_, err := RenamePackage(root, "new-name")
		assert.ErrorContains(t, err, "failed to parse package.json")
	})
}

func TestRegenerateLibrary(t *testing.T) {
	root := newProject(t)

	changed, err := RegenerateLibrary(root, "new-name", "0f6e3a52-8a3b-4bb5-a0a2-5a4f0d8f5e11")
	require.NoError(t, err)
	assert.True(t, changed)

	content := readFile(t, filepath.Join(root, yoRcFile))
	assert.Contains(t, content, `"libraryName": "new-name"`)
	assert.Contains(t, content, `"libraryId": "0f6e3a52-8a3b-4bb5-a0a2-5a4f0d8f5e11"`)
	assert.Contains(t, content, `"version": "1.18.0"`)
}

func TestComponentRenameInvoke(t *testing.T) {
	tests := []struct {
		name          string
		generateNewId string
		wantFiles     []string
		wantLibraryId string
	}{
		{
			name:          "package only",
			generateNewId: "false",
			wantFiles:     []string{packageJSON},
		},
		{
			name:          "with new id",
			generateNewId: "true",
			wantFiles:     []string{packageJSON, yoRcFile},
			wantLibraryId: "0f6e3a52-8a3b-4bb5-a0a2-5a4f0d8f5e11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t)
			nested := filepath.Join(root, "src")
			require.NoError(t, os.MkdirAll(nested, 0755))

			opts := []*types.Option{
				opt(options.NewNameOpt, "new-name"),
				opt(options.GenerateNewIdOpt, tt.generateNewId),
			}
			run := types.NewRun()
			m := newComponentRename(opts, nil, run, nested)
			m.newId = func() string { return "0f6e3a52-8a3b-4bb5-a0a2-5a4f0d8f5e11" }

			var results []types.Result
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for r := range run.Data {
					results = append(results, r)
				}
			}()

			err := m.Invoke(context.Background())
			close(run.Data)
			wg.Wait()
			require.NoError(t, err)

			require.Len(t, results, 1)
			res, ok := results[0].Data.(RenameResult)
			require.True(t, ok)
			assert.Equal(t, root, res.ProjectRoot)
			assert.Equal(t, tt.wantFiles, res.UpdatedFiles)
			assert.Equal(t, tt.wantLibraryId, res.LibraryId)
			assert.Len(t, results[0].Summary.Rows, len(tt.wantFiles))

			if tt.generateNewId == "false" {
				assert.Equal(t, yoRc, readFile(t, filepath.Join(root, yoRcFile)))
			}
		})
	}
}

func TestComponentRenameOutsideProject(t *testing.T) {
	run := types.NewRun()
	m := newComponentRename([]*types.Option{opt(options.NewNameOpt, "new-name")}, nil, run, t.TempDir())

	err := m.Invoke(context.Background())
	assert.True(t, m365errors.IsNotFound(err))
}
