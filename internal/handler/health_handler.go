package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary  Liveness probe
// @Tags     Health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /healthz [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
