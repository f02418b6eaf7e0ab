package id

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidId = errors.New("invalid id")
)

func NewUUID() string {
	return uuid.NewString()
}

// 32位十六进制，不带连字符，用作树的标识和请求Id
func NewUUIDWithoutDash() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Validate 接受带或不带连字符的 uuid
func Validate(s string) error {
	if len(s) == 0 {
		return ErrInvalidId
	}
	if _, err := uuid.Parse(s); err != nil {
		return ErrInvalidId
	}
	return nil
}
