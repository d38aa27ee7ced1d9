package qrcode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Serialize validates that payload is a structured value (an object or an
// array) and returns its compact JSON encoding. HTML characters are not
// escaped, so the bytes match what a browser's JSON.stringify would produce.
func Serialize(payload any) ([]byte, error) {
	switch raw := payload.(type) {
	case json.RawMessage:
		if raw == nil {
			return nil, fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
		}
		return serializeRaw(raw)
	case *json.RawMessage:
		if raw == nil || *raw == nil {
			return nil, fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
		}
		return serializeRaw(*raw)
	}
	if err := checkStructured(payload); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}

	data := bytes.TrimRight(buf.Bytes(), "\n")
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	return data, nil
}

func serializeRaw(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: raw JSON must be an object or array", ErrInvalidPayload)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

func checkStructured(payload any) error {
	if payload == nil {
		return fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
	}
	if _, ok := payload.([]byte); ok {
		return fmt.Errorf("%w: raw bytes are not a structured value", ErrInvalidPayload)
	}

	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		if v.IsNil() {
			return fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
		}
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Errorf("%w: raw bytes are not a structured value", ErrInvalidPayload)
		}
		return nil
	case reflect.Array, reflect.Struct:
		return nil
	}
	return fmt.Errorf("%w: got %s", ErrInvalidPayload, v.Kind())
}
