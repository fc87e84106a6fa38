package solana

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/solana-login/internal/crypto"
	"github.com/AlexZinkM/solana-login/internal/model"

	"github.com/skip2/go-qrcode"
)

// keySource marks keys derived from a login session in the exported file
const keySource = "session"

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var existsErr *FileExistsError
	return errors.As(err, &existsErr)
}

// ExportKeystore writes the session keypair to an encrypted .cwt file.
// Returns the exported public address on success.
// password must be []byte for security (caller should zero it after use)
func ExportKeystore(filePath string, network model.NetworkID, kp *model.Keypair, password []byte) (address string, err error) {
	if kp == nil || len(kp.PrivateKey) == 0 {
		return "", errors.New("no keypair to export")
	}
	if len(password) == 0 {
		return "", errors.New("password cannot be empty")
	}

	// Check file extension (.cwt)
	if ext := filepath.Ext(filePath); ext != ".cwt" {
		return "", fmt.Errorf("file must have .cwt extension")
	}

	fileInfo, err := os.Stat(filePath)
	if err == nil && fileInfo.Size() > 0 {
		return "", &FileExistsError{Message: fmt.Sprintf("file %s is not empty", filePath)}
	}

	address = kp.PublicKey.String()

	qrCode, err := generateQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	privateKey := append([]byte(nil), kp.PrivateKey...)
	defer clear(privateKey)

	// PrivateKey is stored as []byte (base64 encoded in JSON)
	walletData := &model.WalletData{
		PrivateKey: privateKey,
		Source:     keySource,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, network, address, qrCode, walletData, password); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", &FileExistsError{Message: err.Error()}
		}
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
