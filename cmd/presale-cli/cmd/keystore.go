package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"presale-core/internal/ledger"
	"presale-core/pkg/keystore"
)

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "管理预售钱包 Keystore",
}

var keystoreEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "将已有的 base58 私钥加密为 Keystore 文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("文件 %s 已存在", output)
		}

		// 私钥同样不回显
		secret, err := readPassword("输入 base58 私钥: ")
		if err != nil {
			return err
		}
		key, err := ledger.DecodeSecret(secret)
		if err != nil {
			return err
		}

		password, err := readNewPassword()
		if err != nil {
			return err
		}
		keyJSON, err := keystore.EncryptSecret(secret, key.PublicKey().String(), password)
		if err != nil {
			return fmt.Errorf("加密失败: %w", err)
		}
		if err := keyJSON.SaveToFile(output); err != nil {
			return fmt.Errorf("保存文件失败: %w", err)
		}
		fmt.Printf("钱包 %s 已加密保存到 %s\n", key.PublicKey(), output)
		return nil
	},
}

var keystoreAddressCmd = &cobra.Command{
	Use:   "address <file>",
	Short: "解密 Keystore 并显示钱包地址",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyJSON, err := keystore.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		password, err := readPassword("输入密码: ")
		if err != nil {
			return err
		}
		secret, err := keystore.DecryptSecret(keyJSON, password)
		if err != nil {
			return err
		}
		key, err := ledger.DecodeSecret(secret)
		if err != nil {
			return err
		}
		fmt.Printf("钱包地址: %s\n", key.PublicKey())
		return nil
	},
}

func init() {
	keystoreEncryptCmd.Flags().StringP("output", "o", "presale_wallet.json", "Keystore 输出路径")
	keystoreCmd.AddCommand(keystoreEncryptCmd, keystoreAddressCmd)
	rootCmd.AddCommand(keystoreCmd)
}
