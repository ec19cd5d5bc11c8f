package response

import (
	"github.com/gin-gonic/gin"

	"presale-core/pkg/errno"
)

// ErrorResponse 所有失败请求的响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

type InitiatePurchaseResponse struct {
	TransactionID string `json:"transactionId"`
}

type ConfirmPaymentResponse struct {
	Success   bool   `json:"success"`
	Signature string `json:"signature"`
}

// Success returns a success response with data
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(errno.OK.HTTPStatus, data)
}

// Error 按 errno 映射 HTTP 状态码，错误信息原样返回
func Error(c *gin.Context, err error) {
	status, msg := errno.Decode(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}
