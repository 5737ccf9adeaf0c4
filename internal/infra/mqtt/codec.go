package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

var ErrUnknownEncoding = errors.New("unknown payload encoding")

// Encoder turns a message into an MQTT payload.
type Encoder interface {
	Encode(msg any) ([]byte, error)
	Name() string
}

func NewEncoder(name string) (Encoder, error) {
	switch name {
	case "", EncodingJSON:
		return JSONEncoder{}, nil
	case EncodingMsgpack:
		return MsgpackEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

type JSONEncoder struct{}

func (JSONEncoder) Encode(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONEncoder) Name() string {
	return EncodingJSON
}

type MsgpackEncoder struct{}

func (MsgpackEncoder) Encode(msg any) ([]byte, error) {
	return msgpack.Marshal(msg)
}

func (MsgpackEncoder) Name() string {
	return EncodingMsgpack
}
