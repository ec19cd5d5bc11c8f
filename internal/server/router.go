package server

import (
	"presale-core/internal/handler"
	"presale-core/internal/server/routes"
	"presale-core/pkg/monitor"
	"presale-core/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
// 调用前需设置 service.Purchase 与 handler.Progress
func NewHTTPRouter() *gin.Engine {
	// 0. 初始化监控指标与参数校验
	monitor.Init()
	validator.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(CORS())
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 注册业务路由
	routes.RegisterPresaleRoutes(r)

	return r
}
