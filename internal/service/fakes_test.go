package service

import (
	"context"
	"crypto/rand"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"presale-core/internal/ledger"
	"presale-core/internal/model"
)

// fakeLedger 内存中的链，交易按签名登记
type fakeLedger struct {
	mu       sync.Mutex
	txs      map[solana.Signature]*solana.Transaction
	accounts map[solana.PublicKey]bool

	getErr  error
	sendErr error
	// broadcastErr 交易已发出，但确认阶段返回该错误
	broadcastErr error
	sendDelay    time.Duration
	sent         [][]solana.Instruction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		txs:      make(map[solana.Signature]*solana.Transaction),
		accounts: make(map[solana.PublicKey]bool),
	}
}

func (f *fakeLedger) GetTransaction(_ context.Context, sig solana.Signature) (*solana.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	tx, ok := f.txs[sig]
	if !ok {
		return nil, ledger.ErrTransactionNotFound
	}
	return tx, nil
}

func (f *fakeLedger) AccountExists(_ context.Context, account solana.PublicKey) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[account], nil
}

func (f *fakeLedger) SendAndConfirm(_ context.Context, instructions []solana.Instruction, _ solana.PrivateKey) (solana.Signature, error) {
	if f.sendDelay > 0 {
		time.Sleep(f.sendDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	f.sent = append(f.sent, instructions)
	return randomSignature(), f.broadcastErr
}

func (f *fakeLedger) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// record 登记一笔交易并返回其签名
func (f *fakeLedger) record(t *testing.T, instructions ...solana.Instruction) string {
	t.Helper()
	payer := solana.NewWallet().PublicKey()
	tx, err := solana.NewTransaction(instructions, solana.Hash{}, solana.TransactionPayer(payer))
	require.NoError(t, err)

	sig := randomSignature()
	f.mu.Lock()
	f.txs[sig] = tx
	f.mu.Unlock()
	return sig.String()
}

func randomSignature() solana.Signature {
	var sig solana.Signature
	_, _ = rand.Read(sig[:])
	return sig
}

func solTransfer(lamports uint64) solana.Instruction {
	return system.NewTransferInstruction(lamports, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()).Build()
}

func usdtTransfer(amount uint64) solana.Instruction {
	return token.NewTransferInstruction(amount,
		solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), nil).Build()
}

// fakeSender 记录发放调用次数
type fakeSender struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (f *fakeSender) SendTokens(_ context.Context, _ string, _ uint64) (string, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return randomSignature().String(), nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// stubVerifier 固定返回结果
type stubVerifier bool

func (v stubVerifier) Verify(context.Context, string, decimal.Decimal, model.Currency) bool {
	return bool(v)
}

// recordingProducer 记录发布的消息
type recordingProducer struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingProducer) Publish(_ context.Context, _ string, _ string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func newWalletAddress() string {
	return solana.NewWallet().PublicKey().String()
}
