package dto

// --- User Requests ---

type UpdateProfileRequest struct {
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,min=2,max=200"`
}

// UserSearchCriteria - фильтры админского списка пользователей
type UserSearchCriteria struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"` // Кастомное правило
	Status   string `form:"status"`
	Query    string `form:"query"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// --- User Responses ---

type UserListResponse struct {
	Users    []UserDTO `json:"users"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
