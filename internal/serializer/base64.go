package serializer

import (
	"encoding/base64"
)

type base64Serializer struct{}

func (base64Serializer) Name() string { return "base64" }

func (base64Serializer) Binary() bool { return false }

func (base64Serializer) Serialize(data []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(out, data)
	return out, nil
}

func (base64Serializer) Deserialize(data []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(out, data)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}
