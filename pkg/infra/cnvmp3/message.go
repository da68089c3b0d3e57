package cnvmp3

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// providerMessage is the "error" field of a provider response. The field is
// usually a string but null, false and empty values mean no error.
type providerMessage string

func (x *providerMessage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*x = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*x = providerMessage(s)
		return nil
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		*x = providerMessage(data)
		return nil
	default:
		if f, err := strconv.ParseFloat(string(data), 64); err == nil && f == 0 {
			*x = ""
			return nil
		}
		*x = providerMessage(data)
		return nil
	}
}

// providerFlag is a boolean field of a provider response. Like the service's
// web front-end, any truthy JSON value is true: true, non-zero numbers,
// non-empty strings, objects and arrays.
type providerFlag bool

func (x *providerFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*x = false
	case bytes.Equal(data, []byte("true")):
		*x = true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*x = s != ""
	case data[0] == '{' || data[0] == '[':
		*x = true
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*x = f != 0
	}
	return nil
}

// providerText is a text field of a provider response. Numbers and booleans
// are kept as their JSON text; null is empty.
type providerText string

func (x *providerText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*x = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*x = providerText(s)
	default:
		*x = providerText(data)
	}
	return nil
}
