package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
)

// HealthHandler 健康检查
type HealthHandler struct {
	repos *repository.Repositories
}

func NewHealthHandler(repos *repository.Repositories) *HealthHandler {
	return &HealthHandler{repos: repos}
}

// Live always answers 200 while the process serves requests.
// GET /health
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the database connection.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.repos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	if err := h.repos.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
