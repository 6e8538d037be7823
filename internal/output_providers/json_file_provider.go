package outputproviders

import (
	"encoding/json"
	"os"

	"github.com/praetorian-inc/m365/internal/message"
	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/praetorian-inc/m365/pkg/utils"
)

type JsonFileProvider struct {
	types.OutputProvider
	OutputPath string
	FileName   string
}

func (fp *JsonFileProvider) Write(result types.Result) error {
	var filename string

	if fp.FileName != "" {
		filename = fp.FileName
	} else if result.Filename != "" {
		filename = result.Filename
	} else {
		filename = fp.DefaultFileName(result.Module)
	}
	fullpath := GetFullPath(filename, fp.OutputPath)

	if err := utils.EnsureFileDirectory(fullpath); err != nil {
		return err
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return err
	}
	defer file.Close()
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(result.Data)
	if err != nil {
		return err
	}

	message.Success("Output written to %s", fullpath)

	return nil
}

func (fp *JsonFileProvider) DefaultFileName(prefix string) string {
	return DefaultFileName(prefix, "json")
}
