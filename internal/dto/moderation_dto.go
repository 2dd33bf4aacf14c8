package dto

import "github.com/google/uuid"

type BlockUserRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}
