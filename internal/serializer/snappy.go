package serializer

import (
	"fmt"

	"github.com/golang/snappy"
)

type snappySerializer struct{}

func (snappySerializer) Name() string { return "snappy" }

func (snappySerializer) Binary() bool { return true }

func (snappySerializer) Serialize(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (snappySerializer) Deserialize(data []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decode failed: %w", err)
	}
	return out, nil
}
