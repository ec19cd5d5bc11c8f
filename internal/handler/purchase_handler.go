package handler

import (
	"github.com/gin-gonic/gin"

	"presale-core/internal/handler/request"
	"presale-core/internal/handler/response"
	"presale-core/internal/model"
	"presale-core/internal/service"
	"presale-core/pkg/errno"
	"presale-core/pkg/validator"
)

type PurchaseHandler struct{}

var Purchase = &PurchaseHandler{}

// InitiatePurchase 创建购买意向
// @Summary 创建购买意向
// @Description 记录买家的购买意向，返回用于确认支付的 transactionId
// @Tags Presale
// @Accept json
// @Produce json
// @Param request body request.InitiatePurchaseRequest true "Purchase Request"
// @Success 200 {object} response.InitiatePurchaseResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/initiate-purchase [post]
func (h *PurchaseHandler) InitiatePurchase(c *gin.Context) {
	// 1. 绑定参数
	var req request.InitiatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	// 2. 调用 Service
	intent, err := service.Purchase.Initiate(c.Request.Context(), req.BuyerAddress, req.Amount, model.ParseCurrency(req.Currency))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.InitiatePurchaseResponse{TransactionID: intent.ID})
}

// ConfirmPayment 确认支付并发放代币
// @Summary 确认支付
// @Description 校验链上支付交易，成功后向买家发放预售代币
// @Tags Presale
// @Accept json
// @Produce json
// @Param request body request.ConfirmPaymentRequest true "Confirm Request"
// @Success 200 {object} response.ConfirmPaymentResponse
// @Failure 400 {object} response.ErrorResponse "Invalid payment"
// @Failure 404 {object} response.ErrorResponse "Transaction not found"
// @Failure 409 {object} response.ErrorResponse "Already completed or in progress"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/confirm-payment [post]
func (h *PurchaseHandler) ConfirmPayment(c *gin.Context) {
	// 1. 绑定参数
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	// 2. 校验并发放
	intent, err := service.Purchase.Confirm(c.Request.Context(), req.TransactionID, req.Signature)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.ConfirmPaymentResponse{
		Success:   true,
		Signature: intent.TokenSignature,
	})
}

// GetPurchase 查询购买意向
// @Summary 查询购买意向
// @Tags Presale
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} model.PurchaseIntent
// @Failure 404 {object} response.ErrorResponse
// @Router /api/purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	var uri request.PurchaseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	intent, err := service.Purchase.Get(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, intent)
}
