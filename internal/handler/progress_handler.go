package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"presale-core/internal/handler/response"
	"presale-core/pkg/errno"
	"presale-core/pkg/logger"
)

// ProgressSaver 持久化前端进度
type ProgressSaver interface {
	Save(ctx context.Context, data []byte) error
}

type ProgressHandler struct {
	saver ProgressSaver
}

var Progress *ProgressHandler

func NewProgressHandler(saver ProgressSaver) *ProgressHandler {
	return &ProgressHandler{saver: saver}
}

// SaveProgress 保存进度
// @Summary 保存进度
// @Description 将任意 JSON 以缩进格式覆盖写入本地文件
// @Tags Debug
// @Accept json
// @Produce plain
// @Param request body object true "Any JSON"
// @Success 200 {string} string "Progress saved"
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /save-progress [post]
func (h *ProgressHandler) SaveProgress(c *gin.Context) {
	// 1. 读取并校验 JSON
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage(err.Error()))
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(err.Error()))
		return
	}

	// 2. 覆盖写入
	if err := h.saver.Save(c.Request.Context(), buf.Bytes()); err != nil {
		logger.Error("保存进度失败", zap.Error(err))
		response.Error(c, errno.InternalServerError.Wrap(err))
		return
	}

	c.String(http.StatusOK, "Progress saved")
}
