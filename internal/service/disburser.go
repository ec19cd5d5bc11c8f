package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"presale-core/internal/ledger"
	"presale-core/pkg/errno"
	"presale-core/pkg/logger"
	"presale-core/pkg/monitor"
)

// Disburser 从预售钱包向买家的关联代币账户 (ATA) 转账
type Disburser struct {
	client ledger.Client
	signer solana.PrivateKey
	mint   solana.PublicKey
}

func NewDisburser(client ledger.Client, signer solana.PrivateKey, mint solana.PublicKey) *Disburser {
	return &Disburser{client: client, signer: signer, mint: mint}
}

// SendTokens 所有错误都包装为 errno.ErrDisbursement
// 交易已广播但确认结果未知时返回签名和 errno.ErrDisbursementUnconfirmed
func (d *Disburser) SendTokens(ctx context.Context, buyerAddress string, amount uint64) (string, error) {
	start := time.Now()
	defer func() {
		monitor.Business.DisbursementDuration.Observe(time.Since(start).Seconds())
	}()

	instructions, err := d.buildInstructions(ctx, buyerAddress, amount)
	if err != nil {
		return "", errno.ErrDisbursement.Wrap(err)
	}

	sig, err := d.client.SendAndConfirm(ctx, instructions, d.signer)
	if err != nil {
		// 未广播或链上执行失败，代币没有转出
		if sig == (solana.Signature{}) || errors.Is(err, ledger.ErrTransactionFailed) {
			return "", errno.ErrDisbursement.Wrap(err)
		}
		// 已广播但未确认，链上可能已经成功，需要人工核对
		logger.Error("代币发放交易未确认",
			zap.String("buyer", buyerAddress),
			zap.Uint64("amount", amount),
			zap.String("signature", sig.String()),
			zap.Error(err))
		return sig.String(), errno.ErrDisbursementUnconfirmed.Wrap(err)
	}

	monitor.Business.TokensDisbursedTotal.Add(float64(amount))
	logger.Info("代币发放成功",
		zap.String("buyer", buyerAddress),
		zap.Uint64("amount", amount),
		zap.String("signature", sig.String()))
	return sig.String(), nil
}

func (d *Disburser) buildInstructions(ctx context.Context, buyerAddress string, amount uint64) ([]solana.Instruction, error) {
	owner := d.signer.PublicKey()

	// 1. 解析买家地址
	buyer, err := solana.PublicKeyFromBase58(buyerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid buyer address: %w", err)
	}

	// 2. 推导双方的 ATA
	buyerATA, _, err := solana.FindAssociatedTokenAddress(buyer, d.mint)
	if err != nil {
		return nil, fmt.Errorf("derive buyer token account: %w", err)
	}
	presaleATA, _, err := solana.FindAssociatedTokenAddress(owner, d.mint)
	if err != nil {
		return nil, fmt.Errorf("derive presale token account: %w", err)
	}

	// 3. 买家 ATA 不存在时由预售钱包付费创建
	exists, err := d.client.AccountExists(ctx, buyerATA)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction
	if !exists {
		instructions = append(instructions,
			associatedtokenaccount.NewCreateInstruction(owner, buyer, d.mint).Build())
	}

	// 4. 转账
	instructions = append(instructions,
		token.NewTransferInstruction(amount, presaleATA, buyerATA, owner, nil).Build())

	return instructions, nil
}
