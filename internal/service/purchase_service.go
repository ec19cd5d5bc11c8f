package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"presale-core/internal/event"
	"presale-core/internal/model"
	"presale-core/internal/service/mq"
	"presale-core/internal/store"
	"presale-core/pkg/errno"
	"presale-core/pkg/logger"
	"presale-core/pkg/monitor"
)

// PurchaseService 购买流程: 创建意向 -> 校验支付 -> 发放代币
type PurchaseService struct {
	store    store.Store
	verifier PaymentChecker
	sender   TokenSender
	producer mq.Producer
	topic    string
}

var Purchase *PurchaseService

func NewPurchaseService(st store.Store, verifier PaymentChecker, sender TokenSender, producer mq.Producer, topic string) *PurchaseService {
	if producer == nil {
		producer = mq.NoopProducer{}
	}
	return &PurchaseService{
		store:    st,
		verifier: verifier,
		sender:   sender,
		producer: producer,
		topic:    topic,
	}
}

// Initiate 创建 PENDING 状态的购买意向
// 地址、金额与币种都不在此处校验，由确认支付时的链上校验兜底
func (s *PurchaseService) Initiate(ctx context.Context, buyerAddress string, amount decimal.Decimal, currency model.Currency) (*model.PurchaseIntent, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errno.InternalServerError.Wrap(err)
	}

	intent := &model.PurchaseIntent{
		ID:           id.String(),
		BuyerAddress: buyerAddress,
		Amount:       amount,
		Currency:     currency,
		Status:       model.StatusPending,
	}
	if err := s.store.Create(ctx, intent); err != nil {
		logger.Error("创建购买意向失败", zap.Error(err))
		return nil, errno.ErrDatabase.Wrap(err)
	}

	monitor.Business.PurchaseInitiatedTotal.WithLabelValues(string(currency)).Inc()
	logger.Info("购买意向已创建",
		zap.String("id", intent.ID),
		zap.String("buyer", buyerAddress),
		zap.String("amount", amount.String()),
		zap.String("currency", string(currency)))
	return intent, nil
}

// Get 查询购买意向
func (s *PurchaseService) Get(ctx context.Context, id string) (*model.PurchaseIntent, error) {
	intent, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return intent, nil
}

// Confirm 校验支付并发放代币
// 先通过 CAS 将记录锁定为 PROCESSING，同一笔订单只有一个请求能进入链上操作
func (s *PurchaseService) Confirm(ctx context.Context, id, txReference string) (*model.PurchaseIntent, error) {
	// 1. 查询记录
	intent, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.reject("not_found", mapStoreError(err))
	}

	// 2. 已完成的订单不允许重复确认
	if intent.Status == model.StatusCompleted {
		return nil, s.reject("already_completed", errno.ErrAlreadyCompleted)
	}

	// 3. 锁定
	if err := s.store.Transition(ctx, id, model.StatusPending, model.StatusProcessing); err != nil {
		if errors.Is(err, store.ErrStatusConflict) {
			return nil, s.reject("in_progress", errno.ErrPurchaseInProgress)
		}
		return nil, s.reject("store", mapStoreError(err))
	}

	// 4. 校验链上支付
	if !s.verifier.Verify(ctx, txReference, intent.Amount, intent.Currency) {
		s.release(ctx, id)
		return nil, s.reject("invalid_payment", errno.ErrInvalidPayment)
	}

	// 5. 计算应发代币数量
	tokenAmount, err := TokenAmount(intent.Amount, intent.Currency)
	if err != nil {
		logger.Warn("无法计算代币数量", zap.String("id", id), zap.Error(err))
		s.release(ctx, id)
		return nil, s.reject("invalid_payment", errno.ErrInvalidPayment)
	}

	// 6. 发放代币，广播后不受客户端断开影响
	tokenSig, err := s.sender.SendTokens(context.WithoutCancel(ctx), intent.BuyerAddress, tokenAmount)
	if errors.Is(err, errno.ErrDisbursementUnconfirmed) {
		// 交易可能已上链，记录保持 PROCESSING，避免重试时再次发放
		logger.Error("代币发放未确认，订单保持 PROCESSING 等待人工核对",
			zap.String("id", id),
			zap.String("token_signature", tokenSig),
			zap.Error(err))
		return nil, s.reject("disbursement_unconfirmed", err)
	}
	if err != nil {
		logger.Error("代币发放失败", zap.String("id", id), zap.Error(err))
		s.release(ctx, id)
		if !errors.Is(err, errno.ErrDisbursement) {
			err = errno.ErrDisbursement.Wrap(err)
		}
		return nil, s.reject("disbursement", err)
	}

	// 7. 标记完成
	if err := s.store.Complete(context.WithoutCancel(ctx), id, tokenAmount, txReference, tokenSig); err != nil {
		// 代币已发出，记录保持 PROCESSING，避免再次发放
		logger.Error("代币已发放但更新订单失败",
			zap.String("id", id),
			zap.String("token_signature", tokenSig),
			zap.Error(err))
		return nil, errno.ErrDatabase.Wrap(err)
	}

	intent.Status = model.StatusCompleted
	intent.TokenAmount = tokenAmount
	intent.PaymentSignature = txReference
	intent.TokenSignature = tokenSig
	intent.UpdatedAt = time.Now()

	monitor.Business.PurchaseCompletedTotal.WithLabelValues(string(intent.Currency)).Inc()
	s.publishCompleted(ctx, intent)
	return intent, nil
}

// release 将记录放回 PENDING，允许买家使用其他支付重试
func (s *PurchaseService) release(ctx context.Context, id string) {
	if err := s.store.Transition(context.WithoutCancel(ctx), id, model.StatusProcessing, model.StatusPending); err != nil {
		logger.Error("释放购买意向失败", zap.String("id", id), zap.Error(err))
	}
}

func (s *PurchaseService) reject(reason string, err error) error {
	monitor.Business.ConfirmRejectedTotal.WithLabelValues(reason).Inc()
	return err
}

// publishCompleted 事件发送失败只记录日志，不影响接口返回
func (s *PurchaseService) publishCompleted(ctx context.Context, intent *model.PurchaseIntent) {
	payload, err := json.Marshal(event.PurchaseCompletedEvent{
		PurchaseID:       intent.ID,
		BuyerAddress:     intent.BuyerAddress,
		Amount:           intent.Amount.String(),
		Currency:         string(intent.Currency),
		TokenAmount:      intent.TokenAmount,
		PaymentSignature: intent.PaymentSignature,
		TokenSignature:   intent.TokenSignature,
		CompletedAt:      intent.UpdatedAt,
	})
	if err != nil {
		logger.Error("序列化事件失败", zap.Error(err))
		return
	}
	if err := s.producer.Publish(context.WithoutCancel(ctx), s.topic, intent.ID, payload); err != nil {
		logger.Error("发送购买完成事件失败", zap.String("id", intent.ID), zap.Error(err))
	}
}

func mapStoreError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errno.ErrNotFound
	}
	return errno.ErrDatabase.Wrap(err)
}
