package fivetran

import (
	"context"
	"fmt"
)

// ListGroups returns one page of groups in the account
func (c *Client) ListGroups(ctx context.Context, params *ListParams) (*GroupList, error) {
	resp, err := c.doRequest(ctx, "GET", "/groups", listQuery(params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var result GroupList
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process list groups response: %w", err)
	}

	return &result, nil
}

// CreateGroup creates a new group
func (c *Client) CreateGroup(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	resp, err := c.doRequest(ctx, "POST", "/groups", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	var result Group
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process create group response: %w", err)
	}

	return &result, nil
}

// GetGroup fetches a group by ID
func (c *Client) GetGroup(ctx context.Context, groupID string) (*Group, error) {
	path := fmt.Sprintf("/groups/%s", groupID)

	resp, err := c.doRequest(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	var result Group
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process get group response: %w", err)
	}

	return &result, nil
}
