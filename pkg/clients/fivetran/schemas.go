package fivetran

import (
	"context"
	"fmt"
)

// GetConnectorSchemas fetches the table-selection schema config of a connector
func (c *Client) GetConnectorSchemas(ctx context.Context, connectorID string) (*SchemaConfig, error) {
	path := fmt.Sprintf("/connectors/%s/schemas", connectorID)

	resp, err := c.doRequest(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get connector schemas: %w", err)
	}

	var result SchemaConfig
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process get connector schemas response: %w", err)
	}

	return &result, nil
}

// UpdateConnectorSchemas patches the table-selection schema config of a connector
func (c *Client) UpdateConnectorSchemas(ctx context.Context, connectorID string, req *SchemaConfig) (*SchemaConfig, error) {
	path := fmt.Sprintf("/connectors/%s/schemas", connectorID)

	resp, err := c.doRequest(ctx, "PATCH", path, nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update connector schemas: %w", err)
	}

	var result SchemaConfig
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process update connector schemas response: %w", err)
	}

	return &result, nil
}
