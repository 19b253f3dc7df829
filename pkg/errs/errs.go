// Package errs 提供领域错误分类，供应用层快速失败、接口层映射 HTTP 状态码
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别
type Kind uint8

const (
	// KindInternal 内部错误（存储不可用、未知故障）
	KindInternal Kind = iota
	// KindUnauthorized 缺少或无效的调用者身份
	KindUnauthorized
	// KindForbidden 调用者缺少角色或所有权
	KindForbidden
	// KindNotFound 实体不存在或对调用者不可见
	KindNotFound
	// KindConflict 唯一性冲突（重复申请、重复 handle/symbol 等）
	KindConflict
	// KindInvalidState 当前状态下不允许的状态迁移
	KindInvalidState
	// KindValidation 输入不满足领域约束
	KindValidation
)

// String 返回类别的稳定名称
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation_failed"
	default:
		return "internal"
	}
}

// Error 带类别的领域错误
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap 支持 errors.Is / errors.As 链
func (e *Error) Unwrap() error { return e.err }

// Kind 返回错误类别
func (e *Error) Kind() Kind { return e.kind }

// New 创建指定类别的错误
func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Newf 创建指定类别的格式化错误
func Newf(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并附加类别
func Wrap(kind Kind, msg string, err error) error {
	return &Error{kind: kind, msg: msg, err: err}
}

// Unauthorized 缺少调用者身份
func Unauthorized(msg string) error { return New(KindUnauthorized, msg) }

// Forbidden 缺少角色或所有权
func Forbidden(msg string) error { return New(KindForbidden, msg) }

// NotFound 实体不存在
func NotFound(msg string) error { return New(KindNotFound, msg) }

// NotFoundf 实体不存在（格式化）
func NotFoundf(format string, args ...any) error { return Newf(KindNotFound, format, args...) }

// Conflict 唯一性冲突
func Conflict(msg string) error { return New(KindConflict, msg) }

// Conflictf 唯一性冲突（格式化）
func Conflictf(format string, args ...any) error { return Newf(KindConflict, format, args...) }

// InvalidState 非法状态迁移
func InvalidState(msg string) error { return New(KindInvalidState, msg) }

// InvalidStatef 非法状态迁移（格式化）
func InvalidStatef(format string, args ...any) error { return Newf(KindInvalidState, format, args...) }

// Validation 输入校验失败
func Validation(msg string) error { return New(KindValidation, msg) }

// Validationf 输入校验失败（格式化）
func Validationf(format string, args ...any) error { return Newf(KindValidation, format, args...) }

// Internal 包装内部错误，细节不暴露给调用方
func Internal(err error) error {
	return &Error{kind: KindInternal, msg: "internal error", err: err}
}

// KindOf 提取错误类别，未分类的错误视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// IsKind 判断错误是否属于指定类别
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus 将错误类别映射为 HTTP 状态码
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState, KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
