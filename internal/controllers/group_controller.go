package controllers

import (
	"strconv"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/internal/middlewares"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// GroupController handles group resource requests proxied to the upstream
// platform.
type GroupController struct {
	groupManager domain.GroupManager
}

type GroupControllerDependencies struct {
	GroupManager domain.GroupManager
}

func NewGroupController(deps GroupControllerDependencies) *GroupController {
	return &GroupController{
		groupManager: deps.GroupManager,
	}
}

type createGroupRequest struct {
	Name string `json:"name"`
}

// ListGroups returns the upstream groups one page at a time.
func (c *GroupController) ListGroups(ctx fiber.Ctx) error {
	limit, err := queryLimit(ctx)
	if err != nil {
		return err
	}

	groups, err := c.groupManager.ListGroups(ctx.RequestCtx(), domain.ListGroupsParams{
		Limit:  limit,
		Cursor: ctx.Query("cursor"),
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": groups,
	})
}

// CreateGroup creates a group by name, or returns the existing group when a
// group with that name already exists upstream.
func (c *GroupController) CreateGroup(ctx fiber.Ctx) error {
	var req createGroupRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	result, err := c.groupManager.EnsureGroup(ctx.RequestCtx(), domain.EnsureGroupParams{
		Name: req.Name,
	})
	if err != nil {
		return err
	}

	identity, _ := middlewares.IdentityFrom(ctx)

	log.Info().
		Str("group_id", result.Group.ID).
		Bool("created", result.Created).
		Str("username", identity.Username).
		Msg("Group creation request handled")

	return ctx.JSON(fiber.Map{
		"ok":      true,
		"group":   result.Group,
		"created": result.Created,
	})
}

// GetGroup returns a single group by id.
func (c *GroupController) GetGroup(ctx fiber.Ctx) error {
	group, err := c.groupManager.GetGroup(ctx.RequestCtx(), ctx.Params("groupID"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": group,
	})
}

// queryLimit parses the optional limit query parameter shared by the list
// endpoints.
func queryLimit(ctx fiber.Ctx) (int, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, domain.NewValidationError("limit must be a positive integer")
	}

	return limit, nil
}
