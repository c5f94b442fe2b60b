package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/pkg/jwt"
	"payday.backend/pkg/redis"
)

// AuthUsecase handles wallet sign-in: a one-shot nonce is issued per
// address, the wallet signs it with personal_sign, and a verified signature
// yields a JWT session.
type AuthUsecase struct {
	nonces     *redis.NonceStore
	jwtService *jwt.JWTService
}

func NewAuthUsecase(nonces *redis.NonceStore, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{nonces: nonces, jwtService: jwtService}
}

// Nonce issues a fresh login nonce and returns the message to sign
func (u *AuthUsecase) Nonce(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", domainerrors.BadRequest("invalid wallet address")
	}
	normalized := common.HexToAddress(address).Hex()

	nonce, err := u.nonces.Issue(ctx, normalized)
	if err != nil {
		return "", domainerrors.InternalError(err)
	}
	return loginMessage(normalized, nonce), nil
}

// Verify recovers the signer of the nonce message and issues a token pair
// when it matches the claimed address. The nonce is consumed either way.
func (u *AuthUsecase) Verify(ctx context.Context, address, signatureHex string) (*jwt.TokenPair, error) {
	if !common.IsHexAddress(address) {
		return nil, domainerrors.BadRequest("invalid wallet address")
	}
	normalized := common.HexToAddress(address).Hex()

	nonce, err := u.nonces.Consume(ctx, normalized)
	if err != nil {
		return nil, domainerrors.Unauthorized(domainerrors.ErrNonceExpired.Error())
	}

	sig, err := hexutil.Decode(signatureHex)
	if err != nil || len(sig) != 65 {
		return nil, domainerrors.BadRequest("malformed signature")
	}
	// personal_sign encodes the recovery id as 27/28
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	hash := accounts.TextHash([]byte(loginMessage(normalized, nonce)))
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return nil, domainerrors.Unauthorized(domainerrors.ErrInvalidSignature.Error())
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(recovered.Hex(), normalized) {
		return nil, domainerrors.Unauthorized(domainerrors.ErrInvalidSignature.Error())
	}

	pair, err := u.jwtService.GenerateTokenPair(normalized)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair
func (u *AuthUsecase) Refresh(_ context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	pair, err := u.jwtService.GenerateTokenPair(claims.Address)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return pair, nil
}

func loginMessage(address, nonce string) string {
	return fmt.Sprintf("Sign in to PayDay\n\nWallet: %s\nNonce: %s", address, nonce)
}
