package solana

import (
	"github.com/AlexZinkM/solana-login/internal/common"
	"github.com/AlexZinkM/solana-login/internal/model"
	"github.com/AlexZinkM/solana-login/internal/session"
)

// DescribeSession converts a controller snapshot to the API representation.
// The base58 secret key is included so the wallet owner can back it up.
func DescribeSession(snap session.Snapshot) *model.SessionResponse {
	resp := &model.SessionResponse{
		Loading: snap.Loading,
		Status:  snap.Status,
		Network: snap.Network,
		Account: snap.Account,
		User:    snap.User,
	}
	if snap.Keypair != nil {
		resp.Address = snap.Keypair.PublicKey.String()
		resp.SecretKey = snap.Keypair.PrivateKey.String()
	}
	if snap.Account != nil {
		resp.SOL = common.LamportsToSOL(snap.Account.Lamports)
	}
	if snap.LastError != nil {
		resp.LastError = snap.LastError.Error()
	}
	return resp
}
