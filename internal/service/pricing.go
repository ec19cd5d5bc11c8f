package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"presale-core/internal/model"
)

// TokenDecimals 预售代币精度
const TokenDecimals = 9

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrZeroTokenAmount     = errors.New("payment too small to buy any token")
	ErrAmountOverflow      = errors.New("amount exceeds uint64 range")
	ErrFractionalBaseUnits = errors.New("amount has more decimals than the currency supports")
)

// 固定价格表: 每枚预售代币的支付币种价格
var prices = map[model.Currency]decimal.Decimal{
	model.CurrencyStable: decimal.RequireFromString("0.001"),
	model.CurrencyNative: decimal.RequireFromString("0.000005"),
}

var maxUint64 = decimal.RequireFromString("18446744073709551615")

// PriceOf 返回币种对应的单价
func PriceOf(currency model.Currency) (decimal.Decimal, error) {
	price, ok := prices[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, currency)
	}
	return price, nil
}

// TokenAmount 计算应发放的代币数量 (最小单位)
// floor(amount / price * 10^9)，使用整数除法避免精度误差
func TokenAmount(amount decimal.Decimal, currency model.Currency) (uint64, error) {
	price, err := PriceOf(currency)
	if err != nil {
		return 0, err
	}

	q, _ := amount.Shift(TokenDecimals).QuoRem(price, 0)
	if q.Sign() <= 0 {
		return 0, ErrZeroTokenAmount
	}
	if q.GreaterThan(maxUint64) {
		return 0, ErrAmountOverflow
	}
	return q.BigInt().Uint64(), nil
}

// ToBaseUnits 将支付金额转换为链上最小单位 (lamports / USDT 最小单位)
func ToBaseUnits(amount decimal.Decimal, decimals int32) (uint64, error) {
	shifted := amount.Shift(decimals)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrFractionalBaseUnits, amount)
	}
	if shifted.Sign() < 0 || shifted.GreaterThan(maxUint64) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOverflow, amount)
	}
	return shifted.BigInt().Uint64(), nil
}
