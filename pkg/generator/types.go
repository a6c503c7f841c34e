package generator

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"
)

const (
	DefaultModel   = "imagen-4.0-generate-001"
	NumberOfImages = 4
	OutputMIMEType = "image/png"
	AspectRatio    = "1:1"

	// UserMessage は失敗理由にかかわらず利用者へ表示する文言です。
	UserMessage = "Failed to generate floor plans. Please check your API key and try again."
)

// ErrorKind は生成失敗の分類です。どの分類でも自動リトライは行いません。
type ErrorKind string

const (
	KindEmpty          ErrorKind = "empty"
	KindFiltered       ErrorKind = "filtered"
	KindAuth           ErrorKind = "auth"
	KindQuota          ErrorKind = "quota"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindUnavailable    ErrorKind = "unavailable"
	KindCanceled       ErrorKind = "canceled"
	KindUnknown        ErrorKind = "unknown"
)

var (
	errNoImages       = errors.New("API did not return any images")
	errImagesFiltered = errors.New("all generated images were filtered")
)

// GenerationError は1回の送信の失敗を表します。
type GenerationError struct {
	Kind ErrorKind
	// Reason は安全フィルター等でサービスが返した補足情報です。
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	msg := "間取り図の生成に失敗しました (" + string(e.Kind) + ")"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage は画面に表示する汎用メッセージを返します。
func (e *GenerationError) UserMessage() string { return UserMessage }

// KindOf は err が GenerationError であればその分類を返します。
func KindOf(err error) ErrorKind {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// classify は通信エラーを分類して GenerationError に変換します。
func classify(err error) *GenerationError {
	ge := &GenerationError{Kind: KindUnknown, Err: err}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		ge.Kind = KindCanceled
		return ge
	}

	code, ok := apiErrorCode(err)
	if !ok {
		return ge
	}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		ge.Kind = KindAuth
	case code == http.StatusTooManyRequests:
		ge.Kind = KindQuota
	case code == http.StatusBadRequest:
		ge.Kind = KindInvalidRequest
	case code >= http.StatusInternalServerError:
		ge.Kind = KindUnavailable
	}
	return ge
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
