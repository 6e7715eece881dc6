package user

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/campushq/backend/core"
)

var (
	salt    = []byte("campushq.backend.core.user.token_gen")
	NowFunc = time.Now // mockable

	// errors
	errInvalidToken = core.NewValidationError(errors.New("invalid password reset token"))
	errTokenExpired = core.NewValidationError(errors.New("password reset token has expired"))
)

var century = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

func numSecondsSince2001(t time.Time) int {
	return int(t.UTC().Sub(century) / time.Second)
}

// EncodeUID base64 encodes given User ID.
func EncodeUID(usr User) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(usr.ID)))
}

// decodeUID base64 decodes given UID.
func decodeUID(uid string) (int, error) {
	idBytes, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(idBytes))
}

// MakeToken generates a password reset token for a given User. The token
// is bound to the user's current password hash, so it stops verifying
// once the password changes.
func (svc *Service) MakeToken(usr User) (string, error) {
	return svc.makeTokenWithTimestamp(usr, numSecondsSince2001(NowFunc()))
}

// verifyToken checks that a password reset token for a given User is valid.
func (svc *Service) verifyToken(usr User, token string) error {
	if token == "" {
		return errInvalidToken
	}

	parts := strings.SplitN(token, "-", 2)
	if len(parts) < 2 {
		return errInvalidToken
	}

	data, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(parts[0])
	if err != nil {
		return errInvalidToken
	}
	ts, err := strconv.Atoi(string(data))
	if err != nil {
		return errInvalidToken
	}

	// check that the token has not been tampered with
	newToken, err := svc.makeTokenWithTimestamp(usr, ts)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(newToken), []byte(token)) == 0 {
		return errInvalidToken
	}

	// check that the timestamp is within limit
	if numSecondsSince2001(time.Now())-ts > int(svc.conf.PasswordResetTimeoutDelta/time.Second) {
		return errTokenExpired
	}
	return nil
}

func (svc *Service) makeTokenWithTimestamp(usr User, ts int) (string, error) {
	mac := hmac.New(sha256.New, append(salt, svc.conf.SecretKey...))
	if _, err := mac.Write(tokenValue(usr, ts)); err != nil {
		return "", err
	}

	tsB32 := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(strconv.Itoa(ts)))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return tsB32 + "-" + sig, nil
}

func tokenValue(usr User, ts int) []byte {
	var buf bytes.Buffer
	buf.WriteString(strconv.Itoa(usr.ID))
	buf.Write(usr.PasswordHash)
	buf.WriteString(strconv.Itoa(ts))
	return buf.Bytes()
}
