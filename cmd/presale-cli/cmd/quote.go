package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"presale-core/internal/model"
	"presale-core/internal/service"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "按固定价格表计算可获得的预售代币数量",
	RunE: func(cmd *cobra.Command, args []string) error {
		amountStr, _ := cmd.Flags().GetString("amount")
		currencyStr, _ := cmd.Flags().GetString("currency")

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("金额格式错误: %w", err)
		}
		currency := model.ParseCurrency(currencyStr)

		price, err := service.PriceOf(currency)
		if err != nil {
			return err
		}
		tokens, err := service.TokenAmount(amount, currency)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "币种: %s\n单价: %s\n代币数量 (最小单位): %d\n代币数量: %s\n",
			currency, price, tokens, decimal.NewFromUint64(tokens).Shift(-service.TokenDecimals))
		return nil
	},
}

func init() {
	quoteCmd.Flags().String("amount", "", "支付金额")
	quoteCmd.Flags().String("currency", "USDT", "支付币种: NATIVE/SOL 或 STABLE/USDT")
	_ = quoteCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(quoteCmd)
}
