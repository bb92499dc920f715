package intervalio

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// schemaFS holds the JSON schema for structured interval sets.
//
//go:embed schema/intervals.schema.json
var schemaFS embed.FS

const schemaPath = "schema/intervals.schema.json"

// ReadJSON parses a JSON array of {"low", "high", "label"} objects. The
// document is validated against the interval schema before decoding.
func ReadJSON(r io.Reader) ([]Interval, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json intervals: %w", err)
	}

	err = validateSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, err
	}

	var intervals []Interval

	err = json.Unmarshal(data, &intervals)
	if err != nil {
		return nil, fmt.Errorf("decode json intervals: %w", err)
	}

	return checkEntries(intervals)
}

// ReadYAML parses a YAML sequence of {low, high, label} mappings. The decoded
// document goes through the same schema validation as JSON input. An empty
// document yields no intervals.
func ReadYAML(r io.Reader) ([]Interval, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml intervals: %w", err)
	}

	var doc any

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode yaml intervals: %w", err)
	}

	if doc == nil {
		return nil, nil
	}

	err = validateSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}

	var intervals []Interval

	err = yaml.Unmarshal(data, &intervals)
	if err != nil {
		return nil, fmt.Errorf("decode yaml intervals: %w", err)
	}

	return checkEntries(intervals)
}

func validateSchema(doc gojsonschema.JSONLoader) error {
	schema, err := schemaFS.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("load interval schema: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, verr.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}

// checkEntries rejects inverted intervals, which the schema cannot express.
func checkEntries(intervals []Interval) ([]Interval, error) {
	for i, iv := range intervals {
		err := iv.Validate()
		if err != nil {
			return nil, &ParseError{Unit: unitEntry, Line: i + 1, Text: iv.String(), Err: err}
		}
	}

	return intervals, nil
}
