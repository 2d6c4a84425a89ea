// Package orderfile reads a recorded build order from JSON.
//
// Three document shapes are accepted:
//
//   - A string array: ["config", "logging", "state"]
//   - An object whose key-insertion order is the sequence:
//     {"config": {...}, "logging": {...}}
//   - A status document with a "modules" object, as written by build
//     trackers: {"version": 2, "modules": {"config": {...}, ...}}
//
// Key order matters: encoding/json's map decoding discards it, so objects
// are walked with a token decoder that preserves the order keys appear in
// the document. Values are skipped - only the keys form the sequence.
//
// Duplicate keys are preserved in the returned slice; deciding what a
// duplicate means is the verifier's job, not the reader's.
package orderfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/topoplan/topoplan/pkg/errors"
)

// modulesKey is the status-document key whose object holds the order.
const modulesKey = "modules"

// Load reads the recorded order from the JSON file at path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "order file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	order, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOrder, err, "read %s", path)
	}
	return order, nil
}

// Read decodes a recorded order from r. Read does not close r.
func Read(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("order document must be an array or object, got %v", tok)
	}

	switch delim {
	case '[':
		return readArray(dec)
	case '{':
		return readObject(dec)
	default:
		return nil, fmt.Errorf("order document must be an array or object, got %q", delim)
	}
}

// readArray consumes the elements of an already-opened array of strings.
func readArray(dec *json.Decoder) ([]string, error) {
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("order array element %d is not a string: %v", len(order), tok)
		}
		order = append(order, id)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("decode: %w", err)
	}
	return order, nil
}

// readObject walks an already-opened object collecting keys in document
// order. If a "modules" key holds an object, that object's keys are the
// order; otherwise the top-level keys are.
func readObject(dec *json.Decoder) ([]string, error) {
	var topKeys []string
	var moduleKeys []string
	sawModules := false

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}
		topKeys = append(topKeys, key)

		if key == modulesKey && !sawModules {
			keys, isObject, err := tryReadObjectKeys(dec)
			if err != nil {
				return nil, err
			}
			if isObject {
				moduleKeys = keys
				sawModules = true
				continue
			}
			continue // value already consumed by tryReadObjectKeys
		}

		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, fmt.Errorf("decode: %w", err)
	}

	if sawModules {
		return moduleKeys, nil
	}
	return topKeys, nil
}

// tryReadObjectKeys consumes the next value. If it is an object, its keys are
// returned in document order; any other value is skipped with isObject=false.
func tryReadObjectKeys(dec *json.Decoder) (keys []string, isObject bool, err error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, false, fmt.Errorf("decode: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, false, nil // scalar, already consumed
	}
	if delim == '[' {
		if err := skipUntilClose(dec); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false, fmt.Errorf("decode: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false, fmt.Errorf("object key is not a string: %v", tok)
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, false, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, false, fmt.Errorf("decode: %w", err)
	}
	return keys, true, nil
}

// skipValue consumes exactly one JSON value of any shape.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if _, ok := tok.(json.Delim); ok {
		return skipUntilClose(dec)
	}
	return nil
}

// skipUntilClose consumes tokens until the already-opened array or object is
// balanced again.
func skipUntilClose(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
