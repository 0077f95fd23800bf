package fivetran

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ClientInterface defines the operations used against the Fivetran Management API
type ClientInterface interface {
	// Group operations
	ListGroups(ctx context.Context, params *ListParams) (*GroupList, error)
	CreateGroup(ctx context.Context, req *CreateGroupRequest) (*Group, error)
	GetGroup(ctx context.Context, groupID string) (*Group, error)

	// Connector operations
	CreateConnector(ctx context.Context, req *CreateConnectorRequest) (*Connector, error)
	GetConnector(ctx context.Context, connectorID string) (*Connector, error)
	UpdateConnector(ctx context.Context, connectorID string, req *UpdateConnectorRequest) (*Connector, error)
	DeleteConnector(ctx context.Context, connectorID string) (string, error)
	ListGroupConnectors(ctx context.Context, groupID string, params *ListParams) (*ConnectorList, error)

	// Connector actions
	RunSetupTests(ctx context.Context, connectorID string, req *RunSetupTestsRequest) (*Connector, error)
	SyncConnector(ctx context.Context, connectorID string, force bool) (string, error)
	ResyncConnector(ctx context.Context, connectorID string) (string, error)

	// Schema operations
	GetConnectorSchemas(ctx context.Context, connectorID string) (*SchemaConfig, error)
	UpdateConnectorSchemas(ctx context.Context, connectorID string, req *SchemaConfig) (*SchemaConfig, error)
}

// Client provides a high-level interface for the Fivetran Management API
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates a new Fivetran client with the given options
func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// doRequest performs a single request against the Management API. There is
// no retry: any outbound failure propagates immediately to the caller.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	var requestBody io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = bytes.NewBuffer(bodyBytes)
	}

	requestURL := c.config.BaseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.config.DefaultHeaders {
		req.Header.Set(key, value)
	}

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	req.SetBasicAuth(c.config.APIKey, c.config.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// handleResponse decodes the {code, message, data} envelope, unwrapping data
// into result on success and returning a typed *Error on failure.
func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		if resp.StatusCode >= 400 {
			return &Error{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
				Body:       string(body),
			}
		}
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.StatusCode >= 400 {
		log.Debug().
			Int("status_code", resp.StatusCode).
			Str("code", envelope.Code).
			Msg("fivetran api error response")

		message := envelope.Message
		if message == "" {
			message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}

		return &Error{
			StatusCode: resp.StatusCode,
			Code:       envelope.Code,
			Message:    message,
			Body:       string(body),
		}
	}

	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("failed to unmarshal response data: %w", err)
		}
	}

	return nil
}

// handleMessageResponse decodes the envelope of operations that return only
// an acknowledgement message and no data object.
func (c *Client) handleMessageResponse(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		if resp.StatusCode >= 400 {
			return "", &Error{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
				Body:       string(body),
			}
		}
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.StatusCode >= 400 {
		message := envelope.Message
		if message == "" {
			message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}

		return "", &Error{
			StatusCode: resp.StatusCode,
			Code:       envelope.Code,
			Message:    message,
			Body:       string(body),
		}
	}

	return envelope.Message, nil
}

// listQuery builds cursor pagination query parameters
func listQuery(params *ListParams) url.Values {
	query := url.Values{}
	if params == nil {
		return query
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Cursor != "" {
		query.Set("cursor", params.Cursor)
	}
	return query
}
