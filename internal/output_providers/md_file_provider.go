package outputproviders

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/praetorian-inc/m365/pkg/utils"
)

type MarkdownFileProvider struct {
	types.OutputProvider
	OutputPath string
	FileName   string
}

func (fp *MarkdownFileProvider) Write(result types.Result) error {
	if result.Summary == nil {
		return fmt.Errorf("module %s has no summary table to write as markdown", result.Module)
	}

	filename := fp.FileName
	if filename == "" {
		filename = fp.DefaultFileName(result.Module)
	}
	fullpath := GetFullPath(filename, fp.OutputPath)

	if err := utils.EnsureFileDirectory(fullpath); err != nil {
		return err
	}
	file, err := os.OpenFile(fullpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString(result.Summary.ToString() + "\n"); err != nil {
		return err
	}
	slog.Info("Markdown table written", "path", fullpath)
	return nil
}

func (fp *MarkdownFileProvider) DefaultFileName(prefix string) string {
	return DefaultFileName(prefix, "md")
}
