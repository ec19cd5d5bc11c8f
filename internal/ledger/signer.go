package ledger

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/gagliardetto/solana-go"

	"presale-core/pkg/config"
	"presale-core/pkg/errno"
	"presale-core/pkg/keystore"
)

// LoadSigner 加载预售钱包私钥
// 配置了 keystore 时优先从加密文件解密，否则使用 base58 明文私钥
func LoadSigner(cfg config.PresaleConfig) (solana.PrivateKey, error) {
	secret := cfg.PrivateKey

	if cfg.KeystorePath != "" {
		keyJSON, err := keystore.LoadFromFile(cfg.KeystorePath)
		if err != nil {
			return nil, errno.ErrConfig.WithMessage(fmt.Sprintf("load keystore: %v", err))
		}
		secret, err = keystore.DecryptSecret(keyJSON, cfg.KeystorePassword)
		if err != nil {
			return nil, errno.ErrConfig.WithMessage(fmt.Sprintf("decrypt keystore: %v", err))
		}
	}

	if secret == "" {
		return nil, errno.ErrConfig.WithMessage("presale wallet private key is not configured")
	}
	return DecodeSecret(secret)
}

// DecodeSecret 解码 base58 编码的 64 字节私钥
func DecodeSecret(secret string) (solana.PrivateKey, error) {
	raw := base58.Decode(secret)
	if len(raw) == 0 {
		return nil, errno.ErrConfig.WithMessage("presale wallet private key is not valid base58")
	}
	if len(raw) != 64 {
		return nil, errno.ErrConfig.WithMessage(fmt.Sprintf("presale wallet private key must be 64 bytes, got %d", len(raw)))
	}
	return solana.PrivateKey(raw), nil
}

// ParseMint 解析预售代币 Mint 地址
func ParseMint(mint string) (solana.PublicKey, error) {
	if mint == "" {
		return solana.PublicKey{}, errno.ErrConfig.WithMessage("token mint is not configured")
	}
	pk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return solana.PublicKey{}, errno.ErrConfig.WithMessage(fmt.Sprintf("invalid token mint: %v", err))
	}
	return pk, nil
}
