package jwt

import (
	"crypto/sha256"
	"encoding/base64"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimContractorID = "contractor_id"
	ClaimEmail        = "email"
	ClaimType         = "type"
	TokenTypeAccess   = "access"
)

type Service interface {
	GenerateAccessToken(contractorID string, email string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt time.Time) (tokenHash string)
	RestoreRevoked(revoked map[string]time.Time)
	IsTokenRevoked(token string) bool
	PurgeExpired(now time.Time) int
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]time.Time
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpirationTime: expiration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]time.Time),
	}, nil
}

func (j *JWTService) GenerateAccessToken(contractorID string, email string) (token string, expiresAt int64, err error) {
	now := time.Now()
	expiresAt = now.Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		ClaimContractorID: contractorID,
		ClaimEmail:        email,
		ClaimType:         TokenTypeAccess,
		"iat":             now.Unix(),
		"exp":             expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken blocks token until it expires and returns the hash it is stored under.
func (j *JWTService) RevokeToken(token string, expiresAt time.Time) string {
	hash := HashToken(token)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[hash] = expiresAt
	return hash
}

// RestoreRevoked loads revocations persisted by an earlier process.
func (j *JWTService) RestoreRevoked(revoked map[string]time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for hash, expiresAt := range revoked {
		j.revokedTokens[hash] = expiresAt
	}
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[HashToken(token)]
	return revoked
}

// PurgeExpired forgets revocations of tokens that could no longer verify anyway.
func (j *JWTService) PurgeExpired(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	purged := 0
	for hash, expiresAt := range j.revokedTokens {
		if !expiresAt.After(now) {
			delete(j.revokedTokens, hash)
			purged++
		}
	}
	return purged
}

// HashToken hashes the input string using SHA256 and encodes the result in base64.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}
