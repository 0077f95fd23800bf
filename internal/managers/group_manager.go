package managers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"
)

// ensureGroupPageSize is the page size used when scanning for an existing
// group by name
const ensureGroupPageSize = 100

type groupManager struct {
	clients domain.UpstreamClientFactory
}

type GroupManagerDependencies struct {
	Clients domain.UpstreamClientFactory
}

// NewGroupManager creates a manager proxying group operations upstream
func NewGroupManager(deps GroupManagerDependencies) domain.GroupManager {
	return &groupManager{
		clients: deps.Clients,
	}
}

func (m *groupManager) ListGroups(ctx context.Context, params domain.ListGroupsParams) (*fivetran.GroupList, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	list, err := client.ListGroups(ctx, &fivetran.ListParams{Limit: params.Limit, Cursor: params.Cursor})
	if err != nil {
		return nil, translateUpstreamError("group list", err)
	}

	return list, nil
}

// EnsureGroup returns the existing group with the requested name when one
// exists, creating it otherwise. The name scan walks every page of the
// upstream listing so a match beyond the first page is still found.
func (m *groupManager) EnsureGroup(ctx context.Context, params domain.EnsureGroupParams) (domain.EnsureGroupResult, error) {
	if params.Name == "" {
		return domain.EnsureGroupResult{}, domain.NewValidationError("group name is required")
	}

	client, err := m.clients.NewClient()
	if err != nil {
		return domain.EnsureGroupResult{}, err
	}

	pager := client.NewGroupsPager(ensureGroupPageSize)
	for pager.HasMorePages() {
		groups, err := pager.NextPage(ctx)
		if err != nil {
			return domain.EnsureGroupResult{}, translateUpstreamError("group list", err)
		}

		for _, group := range groups {
			if group.Name == params.Name {
				existing := group
				return domain.EnsureGroupResult{Group: &existing, Created: false}, nil
			}
		}
	}

	created, err := client.CreateGroup(ctx, &fivetran.CreateGroupRequest{Name: params.Name})
	if err != nil {
		return domain.EnsureGroupResult{}, translateUpstreamError("group", err)
	}

	log.Info().
		Str("group_id", created.ID).
		Str("name", created.Name).
		Msg("created group")

	return domain.EnsureGroupResult{Group: created, Created: true}, nil
}

func (m *groupManager) GetGroup(ctx context.Context, groupID string) (*fivetran.Group, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	group, err := client.GetGroup(ctx, groupID)
	if err != nil {
		return nil, translateUpstreamError("group", err)
	}

	return group, nil
}
