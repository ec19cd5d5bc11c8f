package cmd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"presale-core/internal/ledger"
	"presale-core/internal/model"
	"presale-core/internal/service"
	"presale-core/pkg/logger"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "使用与服务端相同的规则校验一笔支付交易",
	RunE: func(cmd *cobra.Command, args []string) error {
		signature, _ := cmd.Flags().GetString("signature")
		amountStr, _ := cmd.Flags().GetString("amount")
		currencyStr, _ := cmd.Flags().GetString("currency")
		rpcURL, _ := cmd.Flags().GetString("rpc")
		stableDecimals, _ := cmd.Flags().GetInt32("stable-decimals")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("金额格式错误: %w", err)
		}

		// 打印校验失败原因
		logger.Init(logger.Options{Env: "development", Level: "warn"})
		defer logger.Sync()

		ctx, cancel := contextWithTimeout(cmd, timeout)
		defer cancel()

		client := ledger.NewSolanaClient(rpcURL, timeout, time.Second)
		verifier := service.NewPaymentVerifier(client, stableDecimals)
		if !verifier.Verify(ctx, signature, amount, model.ParseCurrency(currencyStr)) {
			return fmt.Errorf("支付校验未通过")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "支付校验通过")
		return nil
	},
}

func init() {
	verifyCmd.Flags().String("signature", "", "支付交易签名 (base58)")
	verifyCmd.Flags().String("amount", "", "期望的支付金额")
	verifyCmd.Flags().String("currency", "USDT", "支付币种: NATIVE/SOL 或 STABLE/USDT")
	verifyCmd.Flags().String("rpc", "https://api.mainnet-beta.solana.com", "Solana RPC 地址")
	verifyCmd.Flags().Int32("stable-decimals", 6, "稳定币精度")
	verifyCmd.Flags().Duration("timeout", 30*time.Second, "RPC 超时")
	_ = verifyCmd.MarkFlagRequired("signature")
	_ = verifyCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(verifyCmd)
}
