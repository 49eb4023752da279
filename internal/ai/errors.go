package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"
)

// FailureKind classifies a failed model call.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureTimeout
	FailureConnection
	FailureHTTP
	FailureMalformedJSON
	FailureUnexpectedShape
)

func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureConnection:
		return "connection"
	case FailureHTTP:
		return "http"
	case FailureMalformedJSON:
		return "malformed_json"
	case FailureUnexpectedShape:
		return "unexpected_shape"
	default:
		return "unknown"
	}
}

var fallbackMessages = map[FailureKind]string{
	FailureTimeout:         "Lo siento, la consulta tardó demasiado tiempo. Intenta nuevamente.",
	FailureConnection:      "Lo siento, no pude conectar con el servicio. Verifica la conexión.",
	FailureHTTP:            "Lo siento, ocurrió un error en el servicio. Intenta más tarde.",
	FailureMalformedJSON:   "Lo siento, recibí una respuesta malformada del servicio.",
	FailureUnexpectedShape: "Lo siento, recibí una respuesta inesperada del modelo.",
	FailureUnknown:         "Lo siento, ocurrió un error inesperado al procesar tu consulta.",
}

// FallbackMessage is the user-facing reply for a failure kind.
func FallbackMessage(kind FailureKind) string {
	if msg, ok := fallbackMessages[kind]; ok {
		return msg
	}
	return fallbackMessages[FailureUnknown]
}

// ErrUnexpectedShape is returned when a well-formed reply carries no answer.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// ProviderError wraps a failed model call with its classification.
type ProviderError struct {
	Provider   string
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s failure", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

func wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return err
	}
	return &ProviderError{
		Provider:   provider,
		Kind:       classifyRaw(err),
		StatusCode: statusCode(err),
		Err:        err,
	}
}

// Classify returns the FailureKind of an error returned by a Provider.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return classifyRaw(err)
}

func classifyRaw(err error) FailureKind {
	if errors.Is(err, ErrUnexpectedShape) {
		return FailureUnexpectedShape
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var anAPI *anthropic.APIError
	if statusCode(err) != 0 || errors.As(err, &anAPI) {
		return FailureHTTP
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return FailureMalformedJSON
	}

	var opErr *net.OpError
	var urlErr *url.Error
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &urlErr) || errors.As(err, &dnsErr) {
		return FailureConnection
	}
	return FailureUnknown
}

// statusCode extracts the HTTP status from provider SDK errors.
func statusCode(err error) int {
	var httpErr *httpStatusError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	var oaAPI *openai.APIError
	if errors.As(err, &oaAPI) {
		return oaAPI.HTTPStatusCode
	}
	var oaReq *openai.RequestError
	if errors.As(err, &oaReq) {
		return oaReq.HTTPStatusCode
	}
	var anReq *anthropic.RequestError
	if errors.As(err, &anReq) {
		return anReq.StatusCode
	}
	return 0
}

// httpStatusError is returned by the plain REST providers for non-2xx
// replies.
type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
