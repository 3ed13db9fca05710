package projects

import "github.com/google/uuid"

type CreateProjectRequest struct {
	OrgID uuid.UUID `json:"org_id" validate:"required"`
	Name  string    `json:"name" validate:"required,max=200"`
	Code  string    `json:"code" validate:"required,max=20"`
}

type UpdateProjectRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Code   *string `json:"code,omitempty" validate:"omitempty,max=20"`
	Active *bool   `json:"active,omitempty"`
}

type AssignRoleRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required"`
}
