package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
)

// ValidationError is returned for bad or contradictory input. It is always
// produced before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when a lookup matched zero entities.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// TransportError wraps any failure of the underlying HTTP exchange. Code and
// Message are lifted out of OData error payloads when the service sent one.
type TransportError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Message != "" && e.Code != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.StatusCode != 0:
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	default:
		return "request failed"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// ExitCode maps an error to the process exit status. Every failure kind exits
// with 1; scripts that need to tell them apart should inspect the message.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// odataError covers both the Graph/ARM shape {"error":{"code","message"}} and
// the SharePoint verbose shape {"odata.error":{"code","message":{"value"}}}.
type odataError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	SharePoint *struct {
		Code    string `json:"code"`
		Message struct {
			Value string `json:"value"`
		} `json:"message"`
	} `json:"odata.error"`
}

// FromResponse builds a TransportError out of a failed HTTP response. The body
// is consumed.
func FromResponse(resp *http.Response, cause error) *TransportError {
	te := &TransportError{Err: cause}
	if resp == nil {
		return te
	}
	te.StatusCode = resp.StatusCode

	if resp.Body == nil {
		return te
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return te
	}
	parseODataBody(body, te)
	return te
}

func parseODataBody(body []byte, te *TransportError) {
	var payload odataError
	if err := json.Unmarshal(body, &payload); err != nil {
		te.Message = string(body)
		return
	}

	switch {
	case payload.Error != nil:
		te.Code = payload.Error.Code
		te.Message = payload.Error.Message
	case payload.SharePoint != nil:
		te.Code = payload.SharePoint.Code
		te.Message = payload.SharePoint.Message.Value
	}
}

// FromAzure normalises errors coming out of an azcore pipeline. Non-HTTP
// failures (DNS, TLS, token acquisition) are wrapped as they are.
func FromAzure(err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		if respErr.RawResponse != nil {
			return FromResponse(respErr.RawResponse, err)
		}
		return &TransportError{StatusCode: respErr.StatusCode, Code: respErr.ErrorCode, Err: err}
	}
	return &TransportError{Err: err}
}

// FromGraph normalises errors returned by the msgraph SDK.
func FromGraph(err error) error {
	if err == nil {
		return nil
	}

	var odataErr *odataerrors.ODataError
	if errors.As(err, &odataErr) {
		te := &TransportError{StatusCode: odataErr.ResponseStatusCode, Err: err}
		if main := odataErr.GetErrorEscaped(); main != nil {
			if main.GetCode() != nil {
				te.Code = *main.GetCode()
			}
			if main.GetMessage() != nil {
				te.Message = *main.GetMessage()
			}
		}
		return te
	}
	return &TransportError{Err: err}
}
