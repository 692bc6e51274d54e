package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype clients pass to grpc.CallContentSubtype.
const codecName = "json"

func init() {
	encoding.RegisterCodec(messageCodec{})
}

// messageCodec serializes the plain message structs in this package so the
// service can be served without generated protobuf types.
type messageCodec struct{}

func (messageCodec) Name() string { return codecName }

func (messageCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s codec: marshal %T: %w", codecName, v, err)
	}
	return b, nil
}

func (messageCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s codec: unmarshal %T: %w", codecName, v, err)
	}
	return nil
}
