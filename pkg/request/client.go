package request

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/praetorian-inc/m365/version"
)

const moduleName = "m365"

// Common header values for SharePoint REST calls.
const (
	AcceptNoMetadata = "application/json;odata=nometadata"
)

// Headers are set verbatim on the outgoing request.
type Headers map[string]string

// Client issues JSON requests through an azcore pipeline. The pipeline
// attaches a bearer token for the configured scopes and retries transient
// failures.
type Client struct {
	pl    runtime.Pipeline
	retry policy.RetryOptions
}

type Options struct {
	// Credential may be nil for unauthenticated endpoints.
	Credential    azcore.TokenCredential
	Scopes        []string
	ClientOptions policy.ClientOptions
}

func NewClient(opts Options) *Client {
	var perRetry []policy.Policy
	if opts.Credential != nil {
		perRetry = append(perRetry, runtime.NewBearerTokenPolicy(opts.Credential, opts.Scopes, nil))
	}

	clientOpts := opts.ClientOptions
	if clientOpts.Telemetry.ApplicationID == "" {
		clientOpts.Telemetry.ApplicationID = moduleName
	}

	return &Client{
		pl:    runtime.NewPipeline(moduleName, version.AbbreviatedVersion(), runtime.PipelineOptions{PerRetry: perRetry}, &clientOpts),
		retry: clientOpts.Retry,
	}
}

// Get sends a GET and decodes a JSON response into out when out is non-nil.
func (c *Client) Get(ctx context.Context, url string, headers Headers, out any) error {
	return c.do(ctx, http.MethodGet, url, headers, nil, out)
}

// Post sends body as JSON (when non-nil) and decodes the response into out.
// A POST may create data, so only throttled responses are sent again.
func (c *Client) Post(ctx context.Context, url string, headers Headers, body any, out any) error {
	return c.do(throttleRetryOnly(ctx, c.retry), http.MethodPost, url, headers, body, out)
}

// throttleRetryOnly limits the pipeline retry policy to 429 responses for
// requests made with the returned context.
func throttleRetryOnly(ctx context.Context, retry policy.RetryOptions) context.Context {
	retry.StatusCodes = []int{http.StatusTooManyRequests}
	return policy.WithRetryOptions(ctx, retry)
}

func (c *Client) do(ctx context.Context, method, url string, headers Headers, body any, out any) error {
	req, err := runtime.NewRequest(ctx, method, url)
	if err != nil {
		return &m365errors.TransportError{Err: fmt.Errorf("failed to build %s %s: %w", method, url, err)}
	}

	if body != nil {
		if err := runtime.MarshalAsJSON(req, body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req.Raw().Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Raw().Header.Set(k, v)
	}

	resp, err := c.pl.Do(req)
	if err != nil {
		return m365errors.FromAzure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return m365errors.FromAzure(runtime.NewResponseError(resp))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := runtime.UnmarshalAsJSON(resp, out); err != nil {
		return &m365errors.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response from %s: %w", url, err)}
	}
	return nil
}

// Scope returns the .default scope of a resource URL, e.g.
// https://graph.microsoft.com/.default.
func Scope(resource string) string {
	return strings.TrimSuffix(resource, "/") + "/.default"
}
