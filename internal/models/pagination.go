package models

type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func NewPaginatedResponse(data any, total, page, pageSize int) *PaginatedResponse {
	return &PaginatedResponse{Data: data, Total: total, Page: page, PageSize: pageSize}
}
