package bst

type ReplyDto[TCode any, TData any] struct {
	Code TCode  `json:"code" msgpack:"code"`
	Msg  string `json:"msg" msgpack:"msg"`
	Data TData  `json:"data" msgpack:"data"`
}

func Ok[TData any](data TData) ReplyDto[int, TData] {
	return ReplyDto[int, TData]{Code: 0, Msg: "ok", Data: data}
}

func Fail(code int, msg string) ReplyDto[int, any] {
	return ReplyDto[int, any]{Code: code, Msg: msg}
}
