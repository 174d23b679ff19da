package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RequireFields reports the first exported field of a struct (or pointer to
// struct) left at its zero value. LLM replies are decoded first and checked
// here, so code stays the source of truth for the expected shape.
func RequireFields(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("JSON_SCHEMA_VIOLATION: expected struct, got %s", rv.Kind())
	}

	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if rv.Field(i).IsZero() {
			name := field.Name
			if tag := strings.Split(field.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
				name = tag
			}
			return fmt.Errorf("JSON_SCHEMA_VIOLATION: required field '%s' is missing or empty", name)
		}
	}
	return nil
}

// RepairJSON fixes the usual defects in model output: markdown fences,
// single quotes, unquoted keys, trailing commas, unclosed brackets.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Hjson (comments, unquoted keys and strings, optional
// commas) and returns the equivalent standard JSON.
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(hjsonData), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(jsonBytes), nil
}

// ParseHJSONToStruct decodes Hjson into a Go value. Hand-written input files
// go through here.
func ParseHJSONToStruct(hjsonData []byte, v interface{}) error {
	// Route through standard JSON so struct json tags apply.
	std, err := ParseHJSON(string(hjsonData))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(std), v); err != nil {
		return fmt.Errorf("HJSON_UNMARSHAL_ERROR: %v", err)
	}
	return nil
}

// SmartParse decodes input into v, trying in order:
// 1. Standard JSON
// 2. JSON repair
// 3. Hjson (most lenient)
// A strategy only wins when its result also passes every check, so a lenient
// repair that decodes into the wrong shape falls through to the next one.
// It returns the JSON text that finally decoded.
func SmartParse(input string, v interface{}, checks ...func(interface{}) error) (string, error) {
	var lastErr error
	attempt := func(text string) bool {
		resetValue(v)
		if err := json.Unmarshal([]byte(text), v); err != nil {
			lastErr = err
			return false
		}
		for _, check := range checks {
			if err := check(v); err != nil {
				lastErr = err
				return false
			}
		}
		return true
	}

	if attempt(input) {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil && attempt(repaired) {
		return repaired, nil
	}

	if std, err := ParseHJSON(input); err == nil && attempt(std) {
		return std, nil
	}

	resetValue(v)
	if lastErr != nil {
		return "", fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed for input: %w", lastErr)
	}
	return "", fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed for input")
}

// resetValue zeroes the value v points to between decode attempts.
func resetValue(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}
