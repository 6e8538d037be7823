package errors

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestKinds(t *testing.T) {
	validation := NewValidationError("%s is not a valid GUID", "foo")
	notFound := NewNotFoundError("app registration not found")
	transport := &TransportError{StatusCode: 500}

	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", validation)))
	assert.False(t, IsValidation(notFound))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", notFound)))
	assert.True(t, IsTransport(transport))
	assert.False(t, IsTransport(validation))

	assert.Equal(t, "foo is not a valid GUID", validation.Error())
	assert.Equal(t, "app registration not found", notFound.Error())
	assert.Equal(t, "request failed with status 500", transport.Error())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(NewValidationError("bad")))
	assert.Equal(t, 1, ExitCode(NewNotFoundError("missing")))
	assert.Equal(t, 1, ExitCode(&TransportError{StatusCode: 403}))
}

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name        string
		resp        *http.Response
		wantCode    string
		wantMessage string
		wantError   string
	}{
		{
			name:        "graph error body",
			resp:        response(404, `{"error":{"code":"Request_ResourceNotFound","message":"Resource does not exist."}}`),
			wantCode:    "Request_ResourceNotFound",
			wantMessage: "Resource does not exist.",
			wantError:   "Request_ResourceNotFound: Resource does not exist.",
		},
		{
			name:        "sharepoint verbose error body",
			resp:        response(400, `{"odata.error":{"code":"-1, Microsoft.SharePoint.Client.InvalidClientQueryException","message":{"lang":"en-US","value":"The expression is not valid."}}}`),
			wantCode:    "-1, Microsoft.SharePoint.Client.InvalidClientQueryException",
			wantMessage: "The expression is not valid.",
			wantError:   "-1, Microsoft.SharePoint.Client.InvalidClientQueryException: The expression is not valid.",
		},
		{
			name:        "plain text body",
			resp:        response(502, "Bad Gateway"),
			wantMessage: "Bad Gateway",
			wantError:   "Bad Gateway",
		},
		{
			name:      "empty body",
			resp:      response(503, ""),
			wantError: "request failed with status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := FromResponse(tt.resp, nil)
			assert.Equal(t, tt.resp.StatusCode, te.StatusCode)
			assert.Equal(t, tt.wantCode, te.Code)
			assert.Equal(t, tt.wantMessage, te.Message)
			assert.Equal(t, tt.wantError, te.Error())
		})
	}
}

func TestFromAzure(t *testing.T) {
	assert.NoError(t, FromAzure(nil))

	respErr := &azcore.ResponseError{
		StatusCode:  403,
		ErrorCode:   "Authorization_RequestDenied",
		RawResponse: response(403, `{"error":{"code":"Authorization_RequestDenied","message":"Insufficient privileges to complete the operation."}}`),
	}
	err := FromAzure(fmt.Errorf("get: %w", respErr))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 403, te.StatusCode)
	assert.Equal(t, "Insufficient privileges to complete the operation.", te.Message)

	var inner *azcore.ResponseError
	assert.ErrorAs(t, err, &inner)

	plain := FromAzure(io.ErrUnexpectedEOF)
	assert.True(t, IsTransport(plain))
	assert.ErrorIs(t, plain, io.ErrUnexpectedEOF)

	assert.Same(t, te, FromAzure(te))
}

func TestFromGraph(t *testing.T) {
	assert.NoError(t, FromGraph(nil))

	err := FromGraph(io.ErrClosedPipe)
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
