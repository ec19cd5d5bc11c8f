package errno

import (
	"errors"
	"net/http"
)

// Errno defines the error code logic
type Errno struct {
	Code       int
	HTTPStatus int
	Message    string
	cause      error
}

func (e *Errno) Error() string {
	return e.Message
}

// Unwrap 返回底层错误，便于 errors.Is 判断
func (e *Errno) Unwrap() error {
	return e.cause
}

// Is 按错误码比较，使 WithMessage/Wrap 派生出的错误仍能匹配原始定义
func (e *Errno) Is(target error) bool {
	t, ok := target.(*Errno)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage 复制一份错误并替换提示信息
func (e *Errno) WithMessage(msg string) *Errno {
	cp := *e
	cp.Message = msg
	return &cp
}

// Wrap 复制一份错误，携带原始错误信息 (不做脱敏)
func (e *Errno) Wrap(err error) *Errno {
	if err == nil {
		return e
	}
	cp := *e
	cp.Message = err.Error()
	cp.cause = err
	return &cp
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.HTTPStatus, OK.Message
	}

	var typed *Errno
	if errors.As(err, &typed) {
		return typed.HTTPStatus, typed.Message
	}
	// 未归类的错误一律按 500 返回原始信息
	return InternalServerError.HTTPStatus, err.Error()
}

// Common Errors
var (
	OK                  = &Errno{Code: 0, HTTPStatus: http.StatusOK, Message: "Success"}
	InternalServerError = &Errno{Code: 10001, HTTPStatus: http.StatusInternalServerError, Message: "Internal server error"}
	ErrBind             = &Errno{Code: 10002, HTTPStatus: http.StatusBadRequest, Message: "Error occurred while binding the request body to the struct"}
	ErrDatabase         = &Errno{Code: 10004, HTTPStatus: http.StatusInternalServerError, Message: "Database error"}
	ErrConfig           = &Errno{Code: 10005, HTTPStatus: http.StatusInternalServerError, Message: "Invalid configuration"}
)

// Business Errors (20000+)
var (
	ErrNotFound           = &Errno{Code: 20101, HTTPStatus: http.StatusNotFound, Message: "Transaction not found"}
	ErrInvalidPayment     = &Errno{Code: 20102, HTTPStatus: http.StatusBadRequest, Message: "Invalid payment"}
	ErrDisbursement       = &Errno{Code: 20103, HTTPStatus: http.StatusInternalServerError, Message: "Token transfer failed"}
	ErrPurchaseInProgress = &Errno{Code: 20104, HTTPStatus: http.StatusConflict, Message: "Payment confirmation already in progress"}
	ErrAlreadyCompleted   = &Errno{Code: 20105, HTTPStatus: http.StatusConflict, Message: "Transaction already completed"}
	// 已广播但未确认，链上结果未知
	ErrDisbursementUnconfirmed = &Errno{Code: 20106, HTTPStatus: http.StatusInternalServerError, Message: "Token transfer not confirmed"}
)
