package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterAuthRoutes 注册认证路由（无需登录态）
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/signup", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Signup(w, req)
	})

	r.Handle("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Login(w, req)
	})
}

// RegisterProfileRoutes 注册个人资料路由
func (r *Router) RegisterProfileRoutes(h *ProfileHandler, auth *AuthMiddleware) {
	r.Handle("/profile/me", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		switch req.Method {
		case http.MethodGet:
			h.Me(w, req, user)
		case http.MethodPut:
			h.UpdateMe(w, req, user)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

// RegisterHealthRoutes 注册健康数据路由
func (r *Router) RegisterHealthRoutes(h *HealthHandler, auth *AuthMiddleware) {
	r.Handle("/health/medications", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		switch req.Method {
		case http.MethodPost:
			h.CreateMedication(w, req, user)
		case http.MethodGet:
			h.ListMedications(w, req, user)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// medications/{id}
	r.Handle("/health/medications/", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(req.URL.Path, "/health/medications/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.DeleteMedication(w, req, user, id)
	}))

	r.Handle("/health/upload", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Upload(w, req, user)
	}))

	r.Handle("/health/stats", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Stats(w, req, user)
	}))

	r.Handle("/health/inactivity-check", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.InactivityCheck(w, req, user)
	}))
}

// RegisterSafetyRoutes 注册跌倒报警路由
func (r *Router) RegisterSafetyRoutes(h *SafetyHandler, auth *AuthMiddleware) {
	r.Handle("/safety/alert/fall", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.TriggerFall(w, req, user)
	}))

	r.Handle("/safety/alerts", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListAlerts(w, req, user)
	}))
}

// RegisterMedicalRoutes 注册医疗报告路由
func (r *Router) RegisterMedicalRoutes(h *MedicalHandler, auth *AuthMiddleware) {
	r.Handle("/medical/reports", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListReports(w, req, user)
	}))

	r.Handle("/medical/reports/upload", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.UploadReport(w, req, user)
	}))

	// reports/{id}（upload 由上面的精确匹配优先命中）
	r.Handle("/medical/reports/", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(req.URL.Path, "/medical/reports/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.DeleteReport(w, req, user, id)
	}))
}

// RegisterCognitiveRoutes 注册认知分析路由
func (r *Router) RegisterCognitiveRoutes(h *CognitiveHandler, auth *AuthMiddleware) {
	r.Handle("/cognitive/log", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Log(w, req, user)
	}))

	r.Handle("/cognitive/logs", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Logs(w, req, user)
	}))

	r.Handle("/cognitive/analyze", auth.RequireUser(func(w http.ResponseWriter, req *http.Request, user *domain.User) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Analyze(w, req, user)
	}))
}
