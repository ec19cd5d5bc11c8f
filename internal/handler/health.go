package handler

import (
	"presale-core/internal/handler/response"
	"presale-core/pkg/config"

	"github.com/gin-gonic/gin"
)

// HealthCheck godoc
// @Summary Check system health
// @Description Get the current health status of the presale server and its configured backends
// @Tags system
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "UP",
		"service": "presale-server",
	}
	if env := config.Global.App.Env; env != "" {
		body["env"] = env
	}
	if driver := config.Global.Store.Driver; driver != "" {
		body["store"] = driver
	}
	if mqType := config.Global.MQ.Type; mqType != "" {
		body["mq"] = mqType
	}
	response.Success(c, body)
}
