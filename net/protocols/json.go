package protocols

import (
	"bytes"
	"encoding/json"
)

type JsonMarshaler struct{}

func (JsonMarshaler) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal 数字解码为 json.Number，避免大整数经 float64 丢失精度
func (JsonMarshaler) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func (JsonMarshaler) ContentType() string { return ContentTypeJson }
