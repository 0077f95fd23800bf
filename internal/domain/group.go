package domain

import (
	"context"

	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"
)

type ListGroupsParams struct {
	Limit  int    // Optional
	Cursor string // Optional
}

type EnsureGroupParams struct {
	Name string
}

// EnsureGroupResult carries the group plus whether this call created it.
// Created is false when a group with the requested name already existed.
type EnsureGroupResult struct {
	Group   *fivetran.Group
	Created bool
}

// GroupManager proxies group operations to the upstream platform. Group
// creation is idempotent by name: an existing group with the requested name
// is returned unchanged instead of creating a duplicate.
type GroupManager interface {
	ListGroups(ctx context.Context, params ListGroupsParams) (*fivetran.GroupList, error)
	EnsureGroup(ctx context.Context, params EnsureGroupParams) (EnsureGroupResult, error)
	GetGroup(ctx context.Context, groupID string) (*fivetran.Group, error)
}
