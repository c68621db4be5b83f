package constants

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// gin.Context 中保存的 key
const (
	CtxUserId = "kanban.user_id"
	CtxToken  = "kanban.token"
)

const ServiceHeaderAuth = "Authorization"
