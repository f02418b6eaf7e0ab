package protocols

import (
	"github.com/shamaton/msgpack/v2"
)

type MsgPackMarshaler struct{}

func (MsgPackMarshaler) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (MsgPackMarshaler) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (MsgPackMarshaler) ContentType() string { return ContentTypeMsgPack }
