package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jujulabs/juju-dashboard/internal/auth"
	"github.com/jujulabs/juju-dashboard/internal/common"
)

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	if req.Username != h.Cfg.Auth.AdminUser {
		common.Fail(c, http.StatusUnauthorized, 40102, "invalid credentials")
		return
	}
	if err := auth.CheckPassword(h.Cfg.Auth.AdminPasswordHash, req.Password); err != nil {
		common.Fail(c, http.StatusUnauthorized, 40102, "invalid credentials")
		return
	}

	token, err := auth.IssueToken(h.Cfg.Auth.JWTSecret, req.Username)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	common.Ok(c, http.StatusOK, gin.H{"token": token})
}
