package applog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const (
	scopeFieldName     = "scope"
	requestIdFieldName = "request_id"
)

type requestIdCtxKey struct{}

// NewLogger 构造控制台格式的 logger，输出顺序为 级别 时间 请求Id [scope] 消息
func NewLogger(level zerolog.Level, out io.Writer) zerolog.Logger {
	partsOrder := []string{
		zerolog.LevelFieldName,
		zerolog.TimestampFieldName,
		requestIdFieldName,
		scopeFieldName,
		zerolog.MessageFieldName,
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		PartsOrder: partsOrder,
		FormatPrepare: func(m map[string]any) error {
			if v, ok := m[requestIdFieldName].(string); !ok || v == "" {
				m[requestIdFieldName] = ""
			}
			if v, ok := m[scopeFieldName].(string); ok && v != "" {
				m[scopeFieldName] = fmt.Sprintf("[%s]", v)
			} else {
				m[scopeFieldName] = ""
			}
			return nil
		},
		FieldsExclude: []string{requestIdFieldName, scopeFieldName},
	}

	logger := zerolog.New(consoleWriter).Hook(ctxHook{}).Level(level)
	return logger.With().Timestamp().Logger()
}

func WithScope(logger zerolog.Logger, scope string) zerolog.Logger {
	return logger.With().Str(scopeFieldName, scope).Logger()
}

func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdCtxKey{}, requestId)
}

func RequestIdFrom(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIdCtxKey{}).(string); ok {
		return v, true
	}
	return "", false
}

// ParseLevel 空字符串视为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(s)
}

// ctxHook 只在事件带有 .Ctx(ctx) 时生效
type ctxHook struct{}

func (h ctxHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}
	if requestId, ok := RequestIdFrom(ctx); ok {
		e.Str(requestIdFieldName, requestId)
	}
}
