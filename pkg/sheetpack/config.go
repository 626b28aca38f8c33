package sheetpack

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadOptions reads Options from a YAML (.yaml, .yml) or JSON (.json) file.
// Fields the file leaves out keep their defaults; Logger and Clock are never
// read from a file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrap(err, "read config file")
	}

	opts := DefaultOptions()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return Options{}, errors.Wrapf(err, "parse YAML config %s", path)
		}
	case ".json":
		if err := json.Unmarshal(data, &opts); err != nil {
			return Options{}, errors.Wrapf(err, "parse JSON config %s", path)
		}
	default:
		return Options{}, errors.Errorf("unsupported config file format: %s", ext)
	}
	return opts, nil
}
