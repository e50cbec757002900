package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ParseScenario decodes a hand-written scenario file into the given struct.
// Scenario files are authored by people, so parsing is deliberately
// tolerant, trying three layers in order:
//
//  1. strict JSON
//  2. HJSON (comments, unquoted keys and values, optional commas)
//  3. repaired JSON (missing quotes, trailing commas, single quotes)
//
// HJSON must run before the repair layer: the repairer accepts almost any
// input and would fold a well-formed HJSON document into a single mangled
// string value instead of rejecting it.
//
// Only when all three fail does an error come back.
func ParseScenario(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}

	if err := hjson.Unmarshal(data, out); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return fmt.Errorf("scenario file is not valid JSON or HJSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("scenario file is not valid JSON or HJSON: %w", err)
	}
	return nil
}
