package transport

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed Send.
type ErrorKind int

const (
	// KindNetwork means the request never reached the server or no response came back.
	KindNetwork ErrorKind = iota + 1
	// KindHTTPStatus means the server answered outside the 2xx range.
	KindHTTPStatus
	// KindMalformedBody means a body could not be encoded, read or decoded.
	KindMalformedBody
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformedBody:
		return "malformed_body"
	default:
		return "unknown"
	}
}

// ErrorInfo is the single error type returned by Send. Message is always fit
// to show to a user; Status is set only for KindHTTPStatus.
type ErrorInfo struct {
	Kind    ErrorKind
	Status  int
	Message string

	cause error
}

func (e *ErrorInfo) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *ErrorInfo) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// NetworkError wraps a transport-level fault.
func NetworkError(err error) *ErrorInfo {
	msg := "Network error"
	if err != nil {
		msg = fmt.Sprintf("Network error: %v", err)
	}
	return &ErrorInfo{Kind: KindNetwork, Message: msg, cause: err}
}

// AsErrorInfo extracts an ErrorInfo from err's chain.
func AsErrorInfo(err error) (*ErrorInfo, bool) {
	var info *ErrorInfo
	if errors.As(err, &info) && info != nil {
		return info, true
	}
	return nil, false
}

// IsStatus reports whether err is an HTTP status failure with the given code.
func IsStatus(err error, status int) bool {
	info, ok := AsErrorInfo(err)
	return ok && info.Kind == KindHTTPStatus && info.Status == status
}
