package keystore

import (
	"path/filepath"
	"testing"
)

// 测试使用低成本 scrypt 参数，避免占用 256MB 内存
const testScryptN = 1 << 12

func TestEncryptDecryptSecret(t *testing.T) {
	secret := "4NMwxzmYj2uvHuq8xoqhY8RXg63KSVJM1DXkpbmkUY7YQWuoyQgFnnzn6yo3CMnqZasnNPNuAT2TLwQsCaKkUddp"
	password := "secure-password"

	// 1. Encrypt
	keyJSON, err := EncryptSecretWithParams(secret, "PresaleWallet111", password, testScryptN, 1)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}

	if keyJSON.Crypto.Cipher != "aes-256-gcm" {
		t.Errorf("Expected cipher aes-256-gcm, got %s", keyJSON.Crypto.Cipher)
	}
	if keyJSON.Crypto.KDFParams.N != testScryptN {
		t.Errorf("Expected scrypt N %d, got %d", testScryptN, keyJSON.Crypto.KDFParams.N)
	}

	// 2. Decrypt with correct password
	plaintext, err := DecryptSecret(keyJSON, password)
	if err != nil {
		t.Fatalf("Decryption failed: %v", err)
	}

	if plaintext != secret {
		t.Errorf("Decryption mismatch. Expected %s, got %s", secret, plaintext)
	}

	// 3. Decrypt with wrong password
	_, err = DecryptSecret(keyJSON, "wrong-password")
	if err != ErrMACMismatch {
		t.Errorf("Expected ErrMACMismatch with wrong password, got %v", err)
	}
}

func TestFileSaveLoad(t *testing.T) {
	secret := "test secret"
	password := "123456"
	filename := filepath.Join(t.TempDir(), "presale_wallet.json")

	keyJSON, err := EncryptSecretWithParams(secret, "", password, testScryptN, 1)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}

	// Save
	if err := keyJSON.SaveToFile(filename); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	// Load
	loadedJSON, err := LoadFromFile(filename)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loadedJSON.Id != keyJSON.Id {
		t.Errorf("ID mismatch after load")
	}

	decrypted, err := DecryptSecret(loadedJSON, password)
	if err != nil {
		t.Fatalf("Decrypt loaded failed: %v", err)
	}
	if decrypted != secret {
		t.Errorf("Content mismatch")
	}
}

func TestDecryptRejectsUnknownKDF(t *testing.T) {
	keyJSON, err := EncryptSecretWithParams("secret", "", "pw", testScryptN, 1)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	keyJSON.Crypto.KDF = "pbkdf2"

	if _, err := DecryptSecret(keyJSON, "pw"); err == nil {
		t.Error("Expected error for unsupported kdf, got nil")
	}
}
