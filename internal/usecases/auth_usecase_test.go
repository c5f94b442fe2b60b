package usecases

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"payday.backend/pkg/jwt"
	"payday.backend/pkg/redis"
)

func newAuthFixture(t *testing.T) *AuthUsecase {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	return NewAuthUsecase(redis.NewNonceStore(5*time.Minute), jwtService)
}

func signMessage(t *testing.T, message string, keyHex string) (address, signature string) {
	t.Helper()
	key, err := crypto.HexToECDSA(keyHex)
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[64] += 27 // personal_sign recovery id convention

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestAuthUsecase_NonceThenVerify(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	key, _ := crypto.HexToECDSA(testKeyHex)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message, err := uc.Nonce(ctx, address)
	require.NoError(t, err)
	assert.Contains(t, message, address)

	_, signature := signMessage(t, message, testKeyHex)
	pair, err := uc.Verify(ctx, address, signature)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAuthUsecase_VerifyRejectsWrongSigner(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	key, _ := crypto.HexToECDSA(testKeyHex)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message, err := uc.Nonce(ctx, address)
	require.NoError(t, err)

	// Signed by a different key
	otherKey := "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	_, signature := signMessage(t, message, otherKey)

	_, err = uc.Verify(ctx, address, signature)
	assert.Error(t, err)
}

func TestAuthUsecase_NonceIsSingleUse(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	key, _ := crypto.HexToECDSA(testKeyHex)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message, err := uc.Nonce(ctx, address)
	require.NoError(t, err)
	_, signature := signMessage(t, message, testKeyHex)

	_, err = uc.Verify(ctx, address, signature)
	require.NoError(t, err)

	// Replay with the same signature fails: the nonce is gone.
	_, err = uc.Verify(ctx, address, signature)
	assert.Error(t, err)
}

func TestAuthUsecase_VerifyWithoutNonce(t *testing.T) {
	uc := newAuthFixture(t)

	key, _ := crypto.HexToECDSA(testKeyHex)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	_, err := uc.Verify(context.Background(), address, "0x00")
	assert.Error(t, err)
}

func TestAuthUsecase_Nonce_RejectsInvalidAddress(t *testing.T) {
	uc := newAuthFixture(t)

	_, err := uc.Nonce(context.Background(), "not-an-address")
	assert.Error(t, err)
}

func TestAuthUsecase_VerifyRejectsMalformedSignature(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	key, _ := crypto.HexToECDSA(testKeyHex)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	_, err := uc.Nonce(ctx, address)
	require.NoError(t, err)

	_, err = uc.Verify(ctx, address, "0xdeadbeef")
	assert.Error(t, err)
}

func TestAuthUsecase_Refresh(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	key, _ := crypto.HexToECDSA(testKeyHex)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message, err := uc.Nonce(ctx, address)
	require.NoError(t, err)
	_, signature := signMessage(t, message, testKeyHex)
	pair, err := uc.Verify(ctx, address, signature)
	require.NoError(t, err)

	fresh, err := uc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = uc.Refresh(ctx, "garbage")
	assert.Error(t, err)
}
