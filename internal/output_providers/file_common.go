package outputproviders

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/types"
)

// GetFullPath constructs the full file path from filename and output path
func GetFullPath(filename string, outputPath string) string {
	if outputPath == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(outputPath, filename)
}

// DefaultFileName builds <prefix>-<timestamp>.<ext> with spaces in the
// prefix replaced by dashes.
func DefaultFileName(prefix, ext string) string {
	prefix = strings.ReplaceAll(strings.TrimSpace(prefix), " ", "-")
	return fmt.Sprintf("%s-%s.%s", prefix, time.Now().Format("20060102-150405"), ext)
}

// NewFileProvider selects a file writer from the extension of --file:
// .md writes the summary table, .txt the text rendering, anything else JSON.
// Returns nil when --file was not given.
func NewFileProvider(opts []*types.Option) types.OutputProvider {
	path := options.Value(options.FileNameOpt.Name, opts)
	if path == "" {
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return &MarkdownFileProvider{FileName: path}
	case ".txt":
		return &PlainFileProvider{FileName: path}
	default:
		return &JsonFileProvider{FileName: path}
	}
}
