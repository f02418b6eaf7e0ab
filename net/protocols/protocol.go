package protocols

import (
	"mime"
	"strings"
)

const (
	ContentTypeJson    = "application/json"
	ContentTypeMsgPack = "application/x-msgpack"
)

type PayloadMarshaler interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string
}

var (
	jsonMarshaler    PayloadMarshaler = JsonMarshaler{}
	msgpackMarshaler PayloadMarshaler = MsgPackMarshaler{}
)

func Json() PayloadMarshaler { return jsonMarshaler }

func MsgPack() PayloadMarshaler { return msgpackMarshaler }

// ForContentType 根据 Content-Type 或 Accept 头选择编解码器，无法识别时使用 json
func ForContentType(header string) PayloadMarshaler {
	for _, part := range strings.Split(header, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case ContentTypeMsgPack, "application/msgpack":
			return msgpackMarshaler
		case ContentTypeJson:
			return jsonMarshaler
		}
	}
	return jsonMarshaler
}
