package handler

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title          string  `json:"title" validate:"required,max=100"`
	Description    string  `json:"description" validate:"omitempty,max=500"`
	Cost           float64 `json:"cost" validate:"omitempty,gte=0"`
	HoursEstimated float64 `json:"hours_estimated" validate:"omitempty,gte=0"`
	Image          string  `json:"image" validate:"omitempty,url"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. Absent fields are
// left untouched.
type UpdateTaskRequest struct {
	Title          *string  `json:"title" validate:"omitempty,max=100"`
	Description    *string  `json:"description" validate:"omitempty,max=500"`
	Completed      *bool    `json:"completed"`
	Cost           *float64 `json:"cost" validate:"omitempty,gte=0"`
	HoursEstimated *float64 `json:"hours_estimated" validate:"omitempty,gte=0"`
	Image          *string  `json:"image" validate:"omitempty,url"`
}
