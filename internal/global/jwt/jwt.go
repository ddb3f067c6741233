package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/raducarabat/hackcontrol/config"
)

// 全局角色，RoleID 越大权限越高
const (
	RoleUser      = 0
	RoleOrganizer = 1
	RoleAdmin     = 2
)

// Payload 是写入令牌的用户信息
type Payload struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
}

type Claims struct {
	Payload
	jwt.RegisteredClaims
}

// CreateToken 签发访问令牌
func CreateToken(payload Payload) string {
	cfg := config.Get()
	now := time.Now()
	claims := Claims{
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hackcontrol",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWT.AccessExpire) * time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWT.AccessSecret))
	if err != nil {
		panic(err)
	}
	return token
}

// ParseToken 解析并校验令牌，失败时 valid 为 false
func ParseToken(tokenString string) (payload *Claims, valid bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
