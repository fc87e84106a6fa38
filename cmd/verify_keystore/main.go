// Decrypts an exported .cwt keystore and checks that the stored key matches the stored address.
// Usage: go run ./cmd/verify_keystore wallet.cwt
package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/solana-login/internal/config"
	"github.com/AlexZinkM/solana-login/internal/crypto"

	"github.com/gagliardetto/solana-go"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: verify_keystore <file.cwt>")
		os.Exit(2)
	}

	password, err := config.ReadHidden("Enter keystore password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(password)

	cwtFile, walletData, err := crypto.DecryptWallet(os.Args[1], password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decrypt failed:", err)
		os.Exit(1)
	}
	defer clear(walletData.PrivateKey)

	if len(walletData.PrivateKey) != 64 {
		fmt.Fprintf(os.Stderr, "invalid private key length: %d\n", len(walletData.PrivateKey))
		os.Exit(1)
	}

	derived := solana.PrivateKey(walletData.PrivateKey).PublicKey().String()
	if derived != cwtFile.Address {
		fmt.Fprintf(os.Stderr, "address mismatch: file says %s, key gives %s\n", cwtFile.Address, derived)
		os.Exit(1)
	}

	fmt.Printf("ok: %s on %s (source %s, created %s)\n", cwtFile.Address, cwtFile.Network, walletData.Source, walletData.CreatedAt)
}
