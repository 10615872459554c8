package model

import (
	"errors"
	"fmt"
)

// ErrorKind 错误类别
type ErrorKind string

const (
	KindFormat      ErrorKind = "format"      // 工作簿无法读取 / 无工作表
	KindValidation  ErrorKind = "validation"  // 参数非法或解析后无有效数据
	KindNotFound    ErrorKind = "not_found"   // 缺少城市标准或工资数据
	KindPersistence ErrorKind = "persistence" // 存储读写失败
)

// Error 带类别的业务错误
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按类别匹配，使 errors.Is(err, ErrNotFound) 成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrFormat      = &Error{Kind: KindFormat}
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrPersistence = &Error{Kind: KindPersistence}
)

func newError(kind ErrorKind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// FormatError 工作簿格式错误
func FormatError(err error, format string, args ...any) error {
	return newError(KindFormat, err, format, args...)
}

// ValidationError 校验错误
func ValidationError(format string, args ...any) error {
	return newError(KindValidation, nil, format, args...)
}

// NotFoundError 数据缺失
func NotFoundError(format string, args ...any) error {
	return newError(KindNotFound, nil, format, args...)
}

// PersistenceError 存储错误
func PersistenceError(err error, format string, args ...any) error {
	return newError(KindPersistence, err, format, args...)
}

// KindOf 返回错误类别；非业务错误返回空串
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf 返回面向用户的错误信息（不含底层原因）
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
