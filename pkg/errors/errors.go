package errors

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	KindUnknown    Kind = iota
	KindFileRead        // 读取上传文件失败
	KindParse           // 工作簿无法解析
	KindValidation      // 面向用户的前置条件不满足
)

func (k Kind) String() string {
	switch k {
	case KindFileRead:
		return "file_read"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error 带类别的业务错误
//
// Message 面向用户；Err 为底层原因（可为空），解析错误时作为详情返回。
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// FileRead 读取文件失败
func FileRead(err error) *Error {
	return &Error{Kind: KindFileRead, Message: "Ошибка при чтении файла", Err: err}
}

// Parse 工作簿解析失败
func Parse(err error) *Error {
	return &Error{Kind: KindParse, Message: "Ошибка при обработке файла", Err: err}
}

// Validation 前置条件错误
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf 返回错误链上第一个 *Error 的类别
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Details 底层原因的文本，没有时为空
func Details(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return ""
}
