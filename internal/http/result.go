package httpapi

import "net/http"

// ErrorDetail 错误响应体，与前端拦截器约定一致
// 所有4xx/5xx错误统一为 {"detail": "..."}
type ErrorDetail struct {
	Detail string `json:"detail"`
}

func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorDetail{Detail: message})
}

// FailUnauthorized 401响应（带 WWW-Authenticate 头）
func FailUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Fail(w, http.StatusUnauthorized, message)
}
