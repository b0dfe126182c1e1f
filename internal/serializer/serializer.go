package serializer

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

// Serializer transforms stored values. Binary codecs produce bytes that are
// not valid UTF-8 and so cannot travel inside a JSON request as-is.
type Serializer interface {
	Name() string
	Serialize([]byte) ([]byte, error)
	Deserialize([]byte) ([]byte, error)
	Binary() bool
}

var codecs = map[string]Serializer{
	"base64": base64Serializer{},
	"gzip":   gzipSerializer{},
	"snappy": snappySerializer{},
}

// Get returns a Serializer by name, case-insensitively.
func Get(name string) (Serializer, error) {
	codec, ok := codecs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown serializer: %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return codec, nil
}

// Names lists the registered codecs.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodeText applies codec to a value that is about to be sent as a JSON
// string. Binary output is armored with standard base64.
func EncodeText(codec Serializer, value string) (string, error) {
	out, err := codec.Serialize([]byte(value))
	if err != nil {
		return "", fmt.Errorf("failed to serialize value with %s: %w", codec.Name(), err)
	}
	if codec.Binary() {
		return base64.StdEncoding.EncodeToString(out), nil
	}
	return string(out), nil
}

// DecodeText reverses EncodeText on a stored string value.
func DecodeText(codec Serializer, value string) (string, error) {
	data := []byte(value)
	if codec.Binary() {
		raw, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return "", fmt.Errorf("failed to unwrap %s value: %w", codec.Name(), err)
		}
		data = raw
	}
	out, err := codec.Deserialize(data)
	if err != nil {
		return "", fmt.Errorf("failed to deserialize value with %s: %w", codec.Name(), err)
	}
	return string(out), nil
}
