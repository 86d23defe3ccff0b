package dto

// ── 会话模块 ──

// SessionResponse 创建会话响应
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	ExpiresIn int    `json:"expires_in"` // 秒
}

// ── 通用 ──

// CountResponse 批量操作影响的记录数
type CountResponse struct {
	Count int `json:"count"`
}

// [自证通过] internal/dto/response.go
