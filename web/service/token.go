package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jvlcode/goblog/config"
	"github.com/jvlcode/goblog/database/model"
	"github.com/jvlcode/goblog/util/random"
)

// fallbackSecret signs reset tokens when BLOG_SECRET_KEY is unset. It is
// per process, so unconfigured deployments lose outstanding tokens on
// restart.
var fallbackSecret = sync.OnceValue(func() []byte {
	return []byte(random.Seq(32))
})

// tokenSecret is read per call rather than at package init, so a secret
// loaded from .env after the process starts still signs tokens.
func tokenSecret() []byte {
	if secret := config.GetSecretKey(); secret != "" {
		return []byte(secret)
	}
	return fallbackSecret()
}

const tokenHashLength = 40

var ErrInvalidToken = errors.New("invalid or expired reset token")

// TokenService issues and verifies single-use, time-bound password reset
// tokens. The signature covers the user's current password hash, so a
// successful reset invalidates the token that performed it.
type TokenService struct {
	// now is swappable for tests.
	now func() time.Time
}

// MakeToken generates a reset token bound to the user's current state.
func (s *TokenService) MakeToken(user *model.User) string {
	timestamp := strconv.FormatInt(s.timeNow().Unix(), 36)
	return timestamp + "-" + s.signature(user, timestamp)
}

// CheckToken verifies a token against a specific user: well-formed,
// unexpired, and signed over the user's current password hash.
func (s *TokenService) CheckToken(user *model.User, token string) bool {
	timestamp, hash, found := strings.Cut(token, "-")
	if !found {
		return false
	}

	issuedAt, err := strconv.ParseInt(timestamp, 36, 64)
	if err != nil {
		return false
	}
	maxAge := time.Duration(config.GetResetTokenMaxAge()) * time.Hour
	age := s.timeNow().Sub(time.Unix(issuedAt, 0))
	if age < 0 || age > maxAge {
		return false
	}

	return hmac.Equal([]byte(hash), []byte(s.signature(user, timestamp)))
}

// EncodeUID encodes a user id for use in reset URLs.
func (s *TokenService) EncodeUID(id int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(id)))
}

// DecodeUID reverses EncodeUID. Malformed input of any kind is one error.
func (s *TokenService) DecodeUID(uidb64 string) (int, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(uidb64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	id, err := strconv.Atoi(string(decoded))
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (s *TokenService) signature(user *model.User, timestamp string) string {
	mac := hmac.New(sha256.New, tokenSecret())
	fmt.Fprintf(mac, "%d:%s:%s", user.Id, user.Password, timestamp)
	digest := hex.EncodeToString(mac.Sum(nil))
	return digest[:tokenHashLength]
}

func (s *TokenService) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
