package handler

// ChangeRoleRequest is the body of PUT /admin/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}
