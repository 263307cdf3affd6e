package main

import (
	"io/ioutil"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// readDefinitionBytes reads a YAML or JSON definition file and returns its
// contents as JSON.
func readDefinitionBytes(filename string) ([]byte, error) {
	defBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading definition file %s", filename)
	}
	if strings.HasSuffix(filename, ".yaml") ||
		strings.HasSuffix(filename, ".yml") {
		if defBytes, err = yaml.YAMLToJSON(defBytes); err != nil {
			return nil, errors.Wrapf(
				err,
				"error converting file %s to JSON",
				filename,
			)
		}
	}
	return defBytes, nil
}
