package spfx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/m365/internal/jq"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
)

const (
	yoRcFile       = ".yo-rc.json"
	packageJSON    = "package.json"
	generatorKey   = "@microsoft/generator-sharepoint"
	jsonIndent     = "  "
	filePermission = 0644
)

// FindProjectRoot walks up from dir to the first folder holding a
// .yo-rc.json file.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, yoRcFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", m365errors.NewNotFoundError("Couldn't find project root folder")
		}
		dir = parent
	}
}

// rewriteJSON applies a jq update to the JSON file at path and writes it back
// with two space indentation when the content changed. A missing file is
// not an error and reports no change.
func rewriteJSON(path, update string, vars map[string]any, skip func(doc map[string]any) bool) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if skip != nil && skip(doc) {
		return false, nil
	}

	results, err := jq.Apply(doc, update, vars)
	if err != nil {
		return false, err
	}
	if len(results) != 1 {
		return false, fmt.Errorf("unexpected result updating %s", filepath.Base(path))
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)
	if err := encoder.Encode(results[0]); err != nil {
		return false, err
	}

	updated := bytes.TrimRight(buf.Bytes(), "\n")
	if bytes.Equal(updated, content) {
		return false, nil
	}
	return true, os.WriteFile(path, updated, filePermission)
}

// RenamePackage sets the name in package.json. Files without a name, or
// already carrying newName, are left untouched.
func RenamePackage(root, newName string) (bool, error) {
	return rewriteJSON(filepath.Join(root, packageJSON), ".name = $newName",
		map[string]any{"newName": newName},
		func(doc map[string]any) bool {
			name, _ := doc["name"].(string)
			return name == "" || name == newName
		})
}

// RegenerateLibrary sets the generator libraryName and a new libraryId in
// .yo-rc.json.
func RegenerateLibrary(root, newName, newId string) (bool, error) {
	update := fmt.Sprintf(`.[%q].libraryName = $newName | .[%q].libraryId = $newId`, generatorKey, generatorKey)
	return rewriteJSON(filepath.Join(root, yoRcFile), update,
		map[string]any{"newName": newName, "newId": newId},
		func(doc map[string]any) bool {
			_, ok := doc[generatorKey].(map[string]any)
			return !ok
		})
}
