package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"presale-core/internal/ledger"
	"presale-core/internal/model"
	"presale-core/pkg/logger"
	"presale-core/pkg/monitor"
)

const (
	nativeDecimals = 9 // 1 SOL = 10^9 lamports

	systemTransferIx       = 2  // SystemInstruction::Transfer
	tokenTransferIx        = 3  // TokenInstruction::Transfer
	tokenTransferCheckedIx = 12 // TokenInstruction::TransferChecked
)

var errUnexpectedInstruction = errors.New("unexpected instruction")

// PaymentVerifier 根据链上交易校验买家支付
// 只检查第一条发往对应程序的指令金额，不校验付款方和收款方
type PaymentVerifier struct {
	client         ledger.Client
	stableDecimals int32
}

func NewPaymentVerifier(client ledger.Client, stableDecimals int32) *PaymentVerifier {
	return &PaymentVerifier{client: client, stableDecimals: stableDecimals}
}

func (v *PaymentVerifier) Verify(ctx context.Context, txReference string, expectedAmount decimal.Decimal, currency model.Currency) bool {
	ok, err := v.verify(ctx, txReference, expectedAmount, currency)
	if err != nil {
		logger.Warn("支付校验失败",
			zap.String("signature", txReference),
			zap.String("currency", string(currency)),
			zap.Error(err))
	}

	result := "rejected"
	if ok {
		result = "accepted"
	}
	monitor.Business.PaymentVerifyTotal.WithLabelValues(string(currency), result).Inc()
	return ok
}

func (v *PaymentVerifier) verify(ctx context.Context, txReference string, expectedAmount decimal.Decimal, currency model.Currency) (bool, error) {
	// 1. 确定目标程序与金额精度
	var (
		programID solana.PublicKey
		decimals  int32
		decode    func([]byte) (uint64, error)
	)
	switch currency {
	case model.CurrencyNative:
		programID, decimals, decode = solana.SystemProgramID, nativeDecimals, decodeSystemTransfer
	case model.CurrencyStable:
		programID, decimals, decode = solana.TokenProgramID, v.stableDecimals, decodeTokenTransfer
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, currency)
	}

	want, err := ToBaseUnits(expectedAmount, decimals)
	if err != nil {
		return false, err
	}

	// 2. 查询链上交易
	sig, err := solana.SignatureFromBase58(txReference)
	if err != nil {
		return false, fmt.Errorf("invalid signature: %w", err)
	}
	tx, err := v.client.GetTransaction(ctx, sig)
	if err != nil {
		return false, err
	}

	// 3. 找到第一条目标程序的指令并比较金额
	keys := tx.Message.AccountKeys
	for _, ix := range tx.Message.Instructions {
		if int(ix.ProgramIDIndex) >= len(keys) || !keys[ix.ProgramIDIndex].Equals(programID) {
			continue
		}
		got, err := decode(ix.Data)
		if err != nil {
			return false, err
		}
		if got != want {
			return false, fmt.Errorf("amount mismatch: want %d, got %d", want, got)
		}
		return true, nil
	}
	return false, fmt.Errorf("no %s instruction in transaction", programID)
}

// decodeSystemTransfer 解析 System Transfer: u32 指令号 + u64 lamports (小端)
func decodeSystemTransfer(data []byte) (uint64, error) {
	dec := bin.NewBinDecoder(data)
	kind, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return 0, err
	}
	if kind != systemTransferIx {
		return 0, fmt.Errorf("%w: system instruction %d", errUnexpectedInstruction, kind)
	}
	return dec.ReadUint64(binary.LittleEndian)
}

// decodeTokenTransfer 解析 SPL Token Transfer/TransferChecked: u8 指令号 + u64 amount
func decodeTokenTransfer(data []byte) (uint64, error) {
	dec := bin.NewBinDecoder(data)
	kind, err := dec.ReadUint8()
	if err != nil {
		return 0, err
	}
	if kind != tokenTransferIx && kind != tokenTransferCheckedIx {
		return 0, fmt.Errorf("%w: token instruction %d", errUnexpectedInstruction, kind)
	}
	return dec.ReadUint64(binary.LittleEndian)
}
