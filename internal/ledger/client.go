package ledger

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionFailed   = errors.New("transaction failed on-chain")
)

// Client 定义了服务对链的全部依赖，便于在测试中替换
type Client interface {
	// GetTransaction 按签名查询已确认的交易
	// 交易不存在返回 ErrTransactionNotFound，链上执行失败返回 ErrTransactionFailed
	GetTransaction(ctx context.Context, sig solana.Signature) (*solana.Transaction, error)

	// AccountExists 判断账户是否已在链上创建
	AccountExists(ctx context.Context, account solana.PublicKey) (bool, error)

	// SendAndConfirm 签名并广播交易，等待达到 confirmed 状态
	// 广播成功但等待确认失败时，仍会返回签名
	SendAndConfirm(ctx context.Context, instructions []solana.Instruction, signer solana.PrivateKey) (solana.Signature, error)
}
