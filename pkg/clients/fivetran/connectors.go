package fivetran

import (
	"context"
	"fmt"
)

// CreateConnector creates a new connector
func (c *Client) CreateConnector(ctx context.Context, req *CreateConnectorRequest) (*Connector, error) {
	resp, err := c.doRequest(ctx, "POST", "/connectors", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	var result Connector
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process create connector response: %w", err)
	}

	return &result, nil
}

// GetConnector fetches a connector by ID
func (c *Client) GetConnector(ctx context.Context, connectorID string) (*Connector, error) {
	path := fmt.Sprintf("/connectors/%s", connectorID)

	resp, err := c.doRequest(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get connector: %w", err)
	}

	var result Connector
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process get connector response: %w", err)
	}

	return &result, nil
}

// UpdateConnector patches a connector
func (c *Client) UpdateConnector(ctx context.Context, connectorID string, req *UpdateConnectorRequest) (*Connector, error) {
	path := fmt.Sprintf("/connectors/%s", connectorID)

	resp, err := c.doRequest(ctx, "PATCH", path, nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update connector: %w", err)
	}

	var result Connector
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process update connector response: %w", err)
	}

	return &result, nil
}

// DeleteConnector deletes a connector and returns the upstream acknowledgement
func (c *Client) DeleteConnector(ctx context.Context, connectorID string) (string, error) {
	path := fmt.Sprintf("/connectors/%s", connectorID)

	resp, err := c.doRequest(ctx, "DELETE", path, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to delete connector: %w", err)
	}

	message, err := c.handleMessageResponse(resp)
	if err != nil {
		return "", fmt.Errorf("failed to process delete connector response: %w", err)
	}

	return message, nil
}

// ListGroupConnectors returns one page of connectors within a group
func (c *Client) ListGroupConnectors(ctx context.Context, groupID string, params *ListParams) (*ConnectorList, error) {
	path := fmt.Sprintf("/groups/%s/connectors", groupID)

	resp, err := c.doRequest(ctx, "GET", path, listQuery(params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list group connectors: %w", err)
	}

	var result ConnectorList
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process list group connectors response: %w", err)
	}

	return &result, nil
}

// RunSetupTests re-runs the connection tests of a connector
func (c *Client) RunSetupTests(ctx context.Context, connectorID string, req *RunSetupTestsRequest) (*Connector, error) {
	path := fmt.Sprintf("/connectors/%s/test", connectorID)

	resp, err := c.doRequest(ctx, "POST", path, nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to run setup tests: %w", err)
	}

	var result Connector
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process setup tests response: %w", err)
	}

	return &result, nil
}

// SyncConnector triggers a data sync, optionally forcing over a running sync
func (c *Client) SyncConnector(ctx context.Context, connectorID string, force bool) (string, error) {
	path := fmt.Sprintf("/connectors/%s/sync", connectorID)

	resp, err := c.doRequest(ctx, "POST", path, nil, &SyncConnectorRequest{Force: force})
	if err != nil {
		return "", fmt.Errorf("failed to sync connector: %w", err)
	}

	message, err := c.handleMessageResponse(resp)
	if err != nil {
		return "", fmt.Errorf("failed to process sync connector response: %w", err)
	}

	return message, nil
}

// ResyncConnector triggers a full historical re-sync
func (c *Client) ResyncConnector(ctx context.Context, connectorID string) (string, error) {
	path := fmt.Sprintf("/connectors/%s/resync", connectorID)

	resp, err := c.doRequest(ctx, "POST", path, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to resync connector: %w", err)
	}

	message, err := c.handleMessageResponse(resp)
	if err != nil {
		return "", fmt.Errorf("failed to process resync connector response: %w", err)
	}

	return message, nil
}
