package cmd

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"presale-core/pkg/keystore"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "生成新的预售钱包",
	Long:  `生成随机的 Solana 密钥对。指定 --output 时使用密码加密保存为 Keystore 文件，否则直接打印 base58 私钥。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		// 1. 生成密钥
		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return fmt.Errorf("生成密钥失败: %w", err)
		}
		fmt.Printf("钱包地址: %s\n", key.PublicKey())

		if output == "" {
			fmt.Printf("私钥 (base58): %s\n", key)
			fmt.Println("请妥善保管私钥！任何拥有私钥的人都可以转走预售钱包中的代币。")
			return nil
		}

		// 2. 加密保存
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("文件 %s 已存在", output)
		}
		password, err := readNewPassword()
		if err != nil {
			return err
		}
		keyJSON, err := keystore.EncryptSecret(key.String(), key.PublicKey().String(), password)
		if err != nil {
			return fmt.Errorf("加密失败: %w", err)
		}
		if err := keyJSON.SaveToFile(output); err != nil {
			return fmt.Errorf("保存文件失败: %w", err)
		}
		fmt.Printf("Keystore 已保存到 %s\n", output)
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringP("output", "o", "", "Keystore 输出路径")
	rootCmd.AddCommand(keygenCmd)
}
