// Package schema validates project and test case definition files before
// they are submitted to the API server. This is the same shape checking a
// form would do client-side; authoritative validation remains server-side.
package schema

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const projectSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"additionalProperties": false,
	"properties": {
		"name": {
			"type": "string",
			"minLength": 1,
			"maxLength": 100
		},
		"description": {
			"type": "string"
		},
		"repository_url": {
			"type": "string",
			"format": "uri"
		}
	}
}`

const testCaseSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "type"],
	"additionalProperties": false,
	"properties": {
		"name": {
			"type": "string",
			"minLength": 1,
			"maxLength": 200
		},
		"type": {
			"type": "string",
			"enum": ["api", "ui"]
		},
		"description": {
			"type": "string"
		},
		"test_data": {
			"type": "object"
		}
	}
}`

var (
	projectSchemaLoader  = gojsonschema.NewStringLoader(projectSchema)
	testCaseSchemaLoader = gojsonschema.NewStringLoader(testCaseSchema)
)

// ValidateProjectBytes checks a JSON project definition against the project
// schema.
func ValidateProjectBytes(jsonBytes []byte) error {
	return validate(projectSchemaLoader, jsonBytes)
}

// ValidateTestCaseBytes checks a JSON test case definition against the test
// case schema.
func ValidateTestCaseBytes(jsonBytes []byte) error {
	return validate(testCaseSchemaLoader, jsonBytes)
}

func validate(
	schemaLoader gojsonschema.JSONLoader,
	jsonBytes []byte,
) error {
	result, err := gojsonschema.Validate(
		schemaLoader,
		gojsonschema.NewBytesLoader(jsonBytes),
	)
	if err != nil {
		return errors.Wrap(err, "error validating definition")
	}
	if !result.Valid() {
		verrStrs := make([]string, len(result.Errors()))
		for i, verr := range result.Errors() {
			verrStrs[i] = verr.String()
		}
		return errors.Errorf(
			"definition failed validation:\n  %s",
			strings.Join(verrStrs, "\n  "),
		)
	}
	return nil
}
