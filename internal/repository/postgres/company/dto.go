package company

type UpdateRequest struct {
	Name *string `json:"name" form:"name"`
}

type GetInfoResponse struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	WorkerCount int     `json:"worker_count"`
}
