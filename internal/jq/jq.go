package jq

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/itchyny/gojq"
)

// Normalize converts v into the generic JSON shape gojq operates on by
// round-tripping it through encoding/json.
func Normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply runs expr against input and collects every emitted value. vars are
// bound as $name inside the expression.
func Apply(input any, expr string, vars map[string]any) ([]any, error) {
	if expr == "" {
		return nil, fmt.Errorf("jq query is empty")
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq query %q: %w", expr, err)
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]any, 0, len(names))
	varNames := make([]string, 0, len(names))
	for _, name := range names {
		varNames = append(varNames, "$"+name)
		values = append(values, vars[name])
	}

	code, err := gojq.Compile(query, gojq.WithVariables(varNames))
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq query %q: %w", expr, err)
	}

	normalized, err := Normalize(input)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := code.Run(normalized, values...)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			if err, ok := err.(*gojq.HaltError); ok && err.Value() == nil {
				break
			}
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// Query applies expr to v. A single result is returned as is, several are
// returned as a slice.
func Query(v any, expr string) (any, error) {
	results, err := Apply(v, expr, nil)
	if err != nil {
		return nil, err
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

// PerformJqQuery runs expr on a JSON document and returns the first result
// encoded as JSON.
func PerformJqQuery(jsonContent []byte, expr string) ([]byte, error) {
	var data any
	if err := json.Unmarshal(jsonContent, &data); err != nil {
		return nil, err
	}

	results, err := Apply(data, expr, nil)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 || results[0] == nil {
		return nil, fmt.Errorf("key not found")
	}
	return json.Marshal(results[0])
}
