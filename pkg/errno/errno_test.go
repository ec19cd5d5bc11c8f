package errno

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusOK, "Success"},
		{"not found", ErrNotFound, http.StatusNotFound, "Transaction not found"},
		{"invalid payment", ErrInvalidPayment, http.StatusBadRequest, "Invalid payment"},
		{"wrapped errno", fmt.Errorf("confirm: %w", ErrAlreadyCompleted), http.StatusConflict, "Transaction already completed"},
		{"raw error", errors.New("rpc: connection refused"), http.StatusInternalServerError, "rpc: connection refused"},
		{"store fault", ErrDatabase.Wrap(errors.New("connection reset")), http.StatusInternalServerError, "connection reset"},
		{"disbursement keeps raw message", ErrDisbursement.Wrap(errors.New("insufficient funds")), http.StatusInternalServerError, "insufficient funds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Decode(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrnoIs(t *testing.T) {
	cause := errors.New("blockhash not found")
	wrapped := ErrDisbursement.Wrap(cause)

	assert.True(t, errors.Is(wrapped, ErrDisbursement))
	assert.True(t, errors.Is(wrapped, cause))
	assert.False(t, errors.Is(wrapped, ErrInvalidPayment))

	// 派生错误不能修改原始定义
	assert.Equal(t, "Token transfer failed", ErrDisbursement.Message)
	assert.True(t, errors.Is(ErrBind.WithMessage("amount is required"), ErrBind))
}
