package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/core/ports"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create records a new task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      CreateTaskRequest  true  "Task details"
// @Success      201   {object}  Response{data=domain.Task}
// @Failure      400   {object}  Response
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), user.ID, ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Cost:           req.Cost,
		HoursEstimated: req.HoursEstimated,
		Image:          req.Image,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, task, "task created successfully")
}

// List returns every task owned by the caller, newest first.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]domain.Task}
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return respondList(c, http.StatusOK, tasks, len(tasks))
}

// Get returns one of the caller's tasks.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  Response{data=domain.Task}
// @Failure      404  {object}  Response
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, task, "")
}

// Update patches one of the caller's tasks.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      UpdateTaskRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.Task}
// @Failure      404   {object}  Response
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.Update(c.Request().Context(), user.ID, c.Param("id"), ports.TaskUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Completed:      req.Completed,
		Cost:           req.Cost,
		HoursEstimated: req.HoursEstimated,
		Image:          req.Image,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, task, "task updated successfully")
}

// Delete removes one of the caller's tasks.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Delete(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, task, "task deleted successfully")
}

// Stats aggregates the caller's tasks.
//
// @Summary      Own task statistics
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=domain.TaskStats}
// @Router       /tasks/stats [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.taskService.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, stats, "")
}
