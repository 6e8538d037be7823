package outputproviders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/m365/internal/message"
	"github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileOpt(path string) []*types.Option {
	opt := options.FileNameOpt
	opt.Value = path
	return []*types.Option{&opt}
}

func TestNewFileProvider(t *testing.T) {
	assert.Nil(t, NewFileProvider(nil))
	assert.Nil(t, NewFileProvider(fileOpt("")))
	assert.IsType(t, &JsonFileProvider{}, NewFileProvider(fileOpt("out.json")))
	assert.IsType(t, &JsonFileProvider{}, NewFileProvider(fileOpt("out")))
	assert.IsType(t, &MarkdownFileProvider{}, NewFileProvider(fileOpt("out.MD")))
	assert.IsType(t, &PlainFileProvider{}, NewFileProvider(fileOpt("out.txt")))
}

func TestFileProvidersWrite(t *testing.T) {
	message.SetSilent(true)
	defer message.SetSilent(false)

	dir := t.TempDir()

	tests := []struct {
		file string
		want string
	}{
		{file: "nested/result.json", want: `"roleName": "User.Read.All"`},
		{file: "result.md", want: "| Microsoft Graph              | User.Read.All  |"},
		{file: "result.txt", want: "Microsoft Graph               User.Read.All"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			provider := NewFileProvider(fileOpt(path))
			require.NotNil(t, provider)
			require.NoError(t, provider.Write(testResult()))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.want)
		})
	}
}

func TestMarkdownFileProviderNeedsSummary(t *testing.T) {
	provider := &MarkdownFileProvider{FileName: filepath.Join(t.TempDir(), "out.md")}
	err := provider.Write(types.NewResult(types.Spo, "theme list", []string{}))
	assert.Error(t, err)
}

func TestGetFullPath(t *testing.T) {
	assert.Equal(t, "result.json", GetFullPath("result.json", ""))
	assert.Equal(t, filepath.Join("out", "result.json"), GetFullPath("result.json", "out"))
	assert.Equal(t, "/tmp/result.json", GetFullPath("/tmp/result.json", "out"))
	assert.Regexp(t, `^approleassignment-list-\d{8}-\d{6}\.json$`, DefaultFileName("approleassignment list", "json"))
}
