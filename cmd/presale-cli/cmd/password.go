package cmd

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/term"
)

// readPassword 从终端读取密码，不回显
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}
	return string(b), nil
}

// readNewPassword 两次输入确认
func readNewPassword() (string, error) {
	password, err := readPassword("输入密码: ")
	if err != nil {
		return "", err
	}
	confirm, err := readPassword("确认密码: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("两次输入的密码不一致")
	}
	if len(password) < 6 {
		return "", errors.New("密码长度至少需要 6 位")
	}
	return password, nil
}
