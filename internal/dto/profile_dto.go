package dto

type CreateChildProfileRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	AgeBand string `json:"age_band" validate:"required,oneof=3-5 6-8 9-12"`
}

type UpdateChildProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	AgeBand string `json:"age_band" validate:"omitempty,oneof=3-5 6-8 9-12"`
}
