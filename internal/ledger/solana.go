package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"presale-core/pkg/logger"
)

// SolanaClient 基于 JSON-RPC 的 Client 实现
type SolanaClient struct {
	rpc            *rpc.Client
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

func NewSolanaClient(endpoint string, confirmTimeout, pollInterval time.Duration) *SolanaClient {
	if confirmTimeout <= 0 {
		confirmTimeout = 60 * time.Second
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &SolanaClient{
		rpc:            rpc.New(endpoint),
		confirmTimeout: confirmTimeout,
		pollInterval:   pollInterval,
	}
}

func (c *SolanaClient) GetTransaction(ctx context.Context, sig solana.Signature) (*solana.Transaction, error) {
	maxVersion := uint64(0)
	out, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("getTransaction %s: %w", sig, err)
	}
	if out == nil || out.Transaction == nil {
		return nil, ErrTransactionNotFound
	}
	if out.Meta != nil && out.Meta.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, out.Meta.Err)
	}

	tx, err := out.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", sig, err)
	}
	return tx, nil
}

func (c *SolanaClient) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	_, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("getAccountInfo %s: %w", account, err)
	}
	return true, nil
}

func (c *SolanaClient) SendAndConfirm(ctx context.Context, instructions []solana.Instruction, signer solana.PrivateKey) (solana.Signature, error) {
	payer := signer.PublicKey()

	// 1. 获取最新区块哈希
	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("getLatestBlockhash: %w", err)
	}

	// 2. 构造并签名交易
	tx, err := solana.NewTransaction(instructions, recent.Value.Blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer) {
			return &signer
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	// 3. 广播
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sendTransaction: %w", err)
	}
	logger.Info("交易已广播，等待确认", zap.String("signature", sig.String()))

	// 4. 等待确认
	if err := c.waitConfirmed(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// waitConfirmed 轮询签名状态直到 confirmed/finalized 或超时
func (c *SolanaClient) waitConfirmed(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			logger.Debug("查询签名状态失败，稍后重试", zap.String("signature", sig.String()), zap.Error(err))
		} else if out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for confirmation of %s: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}
