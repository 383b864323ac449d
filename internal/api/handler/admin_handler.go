package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns every registered account.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]domain.User}
// @Failure      403  {object}  Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, users, len(users))
}

// ListTasks returns every task in the system regardless of owner, each
// joined with its owner's profile.
//
// @Summary      List all tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]domain.Task}
// @Failure      403  {object}  Response
// @Router       /admin/tasks [get]
func (h *AdminHandler) ListTasks(c echo.Context) error {
	tasks, err := h.adminService.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, tasks, len(tasks))
}

// SystemStats returns system-wide user and task totals.
//
// @Summary      System statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=ports.SystemStats}
// @Failure      403  {object}  Response
// @Router       /admin/stats [get]
func (h *AdminHandler) SystemStats(c echo.Context) error {
	stats, err := h.adminService.SystemStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats, "")
}

// DeleteUser removes an account and every task it owns.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Response{data=domain.User}
// @Failure      400  {object}  Response
// @Failure      404  {object}  Response
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.adminService.DeleteUser(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]interface{}{
		"user":          result.User,
		"tasks_deleted": result.TasksDeleted,
	}, "user deleted successfully")
}

// ChangeRole grants or revokes the admin role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      ChangeRoleRequest  true  "New role"
// @Success      200   {object}  Response{data=domain.User}
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.adminService.ChangeRole(c.Request().Context(), actor.ID, c.Param("id"), req.Role)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user, "role updated successfully")
}
