package project

import (
	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

type CreateReq struct {
	Name        string              `json:"name" binding:"required,min=1,max=200"`
	Description *string             `json:"description" binding:"omitempty,max=1000"`
	Status      field.ProjectStatus `json:"status" binding:"omitempty,enum"`
	Priority    field.Priority      `json:"priority" binding:"omitempty,enum"`
	WorkspaceId uuid.UUID           `json:"workspace_id" binding:"required"`
	StartDate   *field.Date         `json:"start_date"`
	EndDate     *field.Date         `json:"end_date"`
}

type UpdateReq struct {
	Name        *string                    `json:"name" binding:"omitempty,min=1,max=200"`
	Description field.Optional[string]     `json:"description" binding:"omitempty,max=1000"`
	Status      *field.ProjectStatus       `json:"status" binding:"omitempty,enum"`
	Priority    *field.Priority            `json:"priority" binding:"omitempty,enum"`
	StartDate   field.Optional[field.Date] `json:"start_date"`
	EndDate     field.Optional[field.Date] `json:"end_date"`
}

type ListReq struct {
	WorkspaceId string              `form:"workspace_id" binding:"omitempty,uuid"`
	Status      field.ProjectStatus `form:"status" binding:"omitempty,enum"`
	Priority    field.Priority      `form:"priority" binding:"omitempty,enum"`
}
