package echoapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/user"
)

const contextClaimsKey = "userClaims"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"uid"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

func GetUserClaims(usr user.User, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.JWTExpirationDelta)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   usr.ID,
		Username: usr.Username,
		Role:     usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(conf.SecretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// jwtMiddleware authenticates requests bearing a signed token and stores
// the verified Claims on the context.
func jwtMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return errUnauthorized
			}

			claims := new(Claims)
			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, "Bearer "), claims,
				func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
					}
					return conf.SecretKey, nil
				},
			)
			if err != nil || !token.Valid {
				return errUnauthorized
			}

			ctx.Set(contextClaimsKey, *claims)
			return next(ctx)
		}
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(Claims); ok {
		return claims, nil
	}
	return Claims{}, errUnauthorized
}

func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHTTPForbidden
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc    { return roleMiddleware(user.RoleAdmin) }
func educatorMiddleware() echo.MiddlewareFunc { return roleMiddleware(user.RoleEducator) }
func studentMiddleware() echo.MiddlewareFunc  { return roleMiddleware(user.RoleStudent) }
