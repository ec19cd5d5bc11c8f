package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presale-core/internal/ledger"
	"presale-core/pkg/errno"
)

func newTestDisburser(t *testing.T, chain *fakeLedger) (*Disburser, solana.PublicKey) {
	t.Helper()
	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.NewWallet().PublicKey()
	return NewDisburser(chain, signer, mint), mint
}

func TestSendTokensCreatesMissingTokenAccount(t *testing.T) {
	chain := newFakeLedger()
	d, _ := newTestDisburser(t, chain)
	buyer := solana.NewWallet().PublicKey()

	sig, err := d.SendTokens(context.Background(), buyer.String(), 1_000_000_000)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	require.Equal(t, 1, chain.sentCount())
	ixs := chain.sent[0]
	require.Len(t, ixs, 2)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, ixs[0].ProgramID())
	assert.Equal(t, solana.TokenProgramID, ixs[1].ProgramID())

	data, err := ixs[1].Data()
	require.NoError(t, err)
	amount, err := decodeTokenTransfer(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), amount)
}

func TestSendTokensExistingTokenAccount(t *testing.T) {
	chain := newFakeLedger()
	d, mint := newTestDisburser(t, chain)
	buyer := solana.NewWallet().PublicKey()

	buyerATA, _, err := solana.FindAssociatedTokenAddress(buyer, mint)
	require.NoError(t, err)
	chain.accounts[buyerATA] = true

	_, err = d.SendTokens(context.Background(), buyer.String(), 42)
	require.NoError(t, err)

	ixs := chain.sent[0]
	require.Len(t, ixs, 1)
	assert.Equal(t, solana.TokenProgramID, ixs[0].ProgramID())

	// 转账目标是买家的 ATA
	accounts := ixs[0].Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, buyerATA, accounts[1].PublicKey)
}

func TestSendTokensErrors(t *testing.T) {
	chain := newFakeLedger()
	d, _ := newTestDisburser(t, chain)

	_, err := d.SendTokens(context.Background(), "invalid-address", 1)
	assert.True(t, errors.Is(err, errno.ErrDisbursement))

	chain.sendErr = errors.New("insufficient funds for rent")
	_, err = d.SendTokens(context.Background(), solana.NewWallet().PublicKey().String(), 1)
	require.True(t, errors.Is(err, errno.ErrDisbursement))

	// 错误信息原样返回给调用方
	_, msg := errno.Decode(err)
	assert.Equal(t, "insufficient funds for rent", msg)
}

func TestSendTokensBroadcastWithoutConfirmation(t *testing.T) {
	chain := newFakeLedger()
	d, _ := newTestDisburser(t, chain)
	buyer := solana.NewWallet().PublicKey().String()

	// 确认超时: 结果未知，返回签名供核对
	chain.broadcastErr = fmt.Errorf("wait for confirmation: %w", context.DeadlineExceeded)
	sig, err := d.SendTokens(context.Background(), buyer, 1)
	require.True(t, errors.Is(err, errno.ErrDisbursementUnconfirmed))
	assert.False(t, errors.Is(err, errno.ErrDisbursement))
	assert.NotEmpty(t, sig)

	// 链上执行失败: 代币未转出，按普通发放失败处理
	chain.broadcastErr = fmt.Errorf("%w: custom program error", ledger.ErrTransactionFailed)
	sig, err = d.SendTokens(context.Background(), buyer, 1)
	require.True(t, errors.Is(err, errno.ErrDisbursement))
	assert.Empty(t, sig)
}
