// Package utils holds small shared helpers with no domain knowledge.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// DecodeLenient parses a hand-maintained data file into schema, trying
// progressively more forgiving strategies:
//
//  1. Standard JSON
//  2. HJSON (comments, unquoted keys, optional commas)
//  3. json-repair followed by standard JSON (trailing commas, single
//     quotes, unclosed brackets)
//
// The returned error is the strict-JSON error, since that is the one a
// file author should fix.
func DecodeLenient(data []byte, schema interface{}) error {
	strictErr := json.Unmarshal(data, schema)
	if strictErr == nil {
		return nil
	}

	if err := hjson.Unmarshal(data, schema); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	return fmt.Errorf("not parseable as JSON or HJSON: %w", strictErr)
}
