// Package token issues and verifies the two classes of signed credentials the
// API hands out: session tokens for authenticated operators and short-lived
// stream tokens granting knowledge of an asset's playable location. Tokens are
// self-contained HS256 JWTs; nothing about them is persisted, so a token is
// valid exactly while its signature checks out against the class secret and
// its expiry has not passed.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionTTL = time.Hour
	StreamTTL  = 10 * time.Minute
)

// ErrInvalidToken covers every verification failure: malformed input,
// signature mismatch (including a token signed for the other class) and
// expiry. Callers branch on it instead of inspecting parser internals.
var ErrInvalidToken = errors.New("invalid or expired token")

type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type StreamClaims struct {
	MediaID string `json:"media_id"`
	FileURL string `json:"file_url"`
	jwt.RegisteredClaims
}

// Service signs with two independent secrets so that compromise of one class
// never grants the other's capability.
type Service struct {
	sessionSecret []byte
	streamSecret  []byte
	now           func() time.Time
}

func NewService(sessionSecret, streamSecret string) *Service {
	return &Service{
		sessionSecret: []byte(sessionSecret),
		streamSecret:  []byte(streamSecret),
		now:           time.Now,
	}
}

func (s *Service) IssueSession(userID uint, email string) (string, error) {
	now := s.now()
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
}

func (s *Service) VerifySession(raw string) (SessionClaims, error) {
	var claims SessionClaims
	if err := s.verify(raw, &claims, s.sessionSecret); err != nil {
		return SessionClaims{}, err
	}
	return claims, nil
}

func (s *Service) IssueStream(mediaID, fileURL string) (string, error) {
	now := s.now()
	claims := &StreamClaims{
		MediaID: mediaID,
		FileURL: fileURL,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(StreamTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.streamSecret)
}

func (s *Service) VerifyStream(raw string) (StreamClaims, error) {
	var claims StreamClaims
	if err := s.verify(raw, &claims, s.streamSecret); err != nil {
		return StreamClaims{}, err
	}
	return claims, nil
}

func (s *Service) verify(raw string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
