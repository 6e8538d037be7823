package outputproviders

import (
	"bytes"
	"os"

	"github.com/praetorian-inc/m365/internal/message"
	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/praetorian-inc/m365/pkg/utils"
)

// PlainFileProvider writes the text rendering the console would show.
type PlainFileProvider struct {
	types.OutputProvider
	OutputPath string
	FileName   string
}

func (fp *PlainFileProvider) Write(result types.Result) error {
	filename := fp.FileName
	if filename == "" {
		filename = fp.DefaultFileName(result.Module)
	}
	fullpath := GetFullPath(filename, fp.OutputPath)

	if err := utils.EnsureFileDirectory(fullpath); err != nil {
		return err
	}

	var buf bytes.Buffer
	console := &ConsoleProvider{Format: FormatText, out: &buf}
	if err := console.Write(result); err != nil {
		return err
	}

	file, err := os.OpenFile(fullpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.Write(buf.Bytes()); err != nil {
		return err
	}

	message.Success("Output written to %s", fullpath)

	return nil
}

func (fp *PlainFileProvider) DefaultFileName(prefix string) string {
	return DefaultFileName(prefix, "txt")
}
