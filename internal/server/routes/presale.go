package routes

import (
	"presale-core/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterPresaleRoutes 路径与旧版前端保持一致，不带版本号
func RegisterPresaleRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/initiate-purchase", handler.Purchase.InitiatePurchase)
		api.POST("/confirm-payment", handler.Purchase.ConfirmPayment)
		api.GET("/purchases/:id", handler.Purchase.GetPurchase)
	}

	r.POST("/save-progress", handler.Progress.SaveProgress)
}
