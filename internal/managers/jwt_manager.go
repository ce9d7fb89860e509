package managers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"red-social-api/internal/schemas"
	"red-social-api/internal/utils"
)

// JWTMgr handles token generation, decoding and the auth guard middleware.
type JWTMgr interface {
	GenerateClaims(user *schemas.User) jwt.MapClaims
	GenerateJWT(claims jwt.Claims) (string, error)
	DecodeJWT(tokenString string) (jwt.MapClaims, error)
	JWTMiddleware() gin.HandlerFunc
}

// JWTManager signs and verifies tokens with a shared secret. The secret
// comes from configuration; verification is fully stateless.
type JWTManager struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTManager creates a new JWTManager with the given secret and token lifetime.
func NewJWTManager(secret string, lifetime time.Duration) JWTMgr {
	return &JWTManager{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// GenerateClaims builds the claim set from a user record plus the
// current time and the configured lifetime.
func (jm *JWTManager) GenerateClaims(user *schemas.User) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"id":      user.ID.String(),
		"name":    user.Name,
		"surname": user.Surname,
		"nick":    user.Nick,
		"email":   user.Email,
		"role":    user.Role,
		"image":   user.Image,
		"iat":     now.Unix(),
		"exp":     now.Add(jm.lifetime).Unix(),
	}
}

// GenerateJWT signs the given claims and returns the encoded token.
func (jm *JWTManager) GenerateJWT(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jm.secret)
}

// DecodeJWT verifies the signature and encoding of the given token and
// returns its claims. Expiry is deliberately not checked here; the
// guard compares it against the current time itself.
func (jm *JWTManager) DecodeJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("invalid signing method")
		}
		return jm.secret, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// JWTMiddleware is the auth guard. A missing authorization header is
// rejected with 403, a token that fails decoding with 404 and an
// expired one with 401; the three kinds are part of the documented
// contract. On success the claims are attached to the request context.
func (jm *JWTManager) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.WriteAndLogError(c, schemas.MissingAuthHeader, http.StatusForbidden,
				fmt.Errorf("missing authorization header"))
			c.Abort()
			return
		}

		// Clients are known to send the token wrapped in quotes.
		tokenString := strings.NewReplacer(`"`, "", `'`, "").Replace(header)

		claims, err := jm.DecodeJWT(tokenString)
		if err != nil {
			utils.WriteAndLogError(c, schemas.InvalidToken, http.StatusNotFound, err)
			c.Abort()
			return
		}

		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if exp.Unix() <= time.Now().Unix() {
				utils.WriteAndLogError(c, schemas.ExpiredToken, http.StatusUnauthorized,
					fmt.Errorf("token expired at %v", exp.Time))
				c.Abort()
				return
			}
		}

		c.Set(utils.ClaimsKey.String(), claims)
		c.Next()
	}
}
