package jwt

import (
	"errors"
	"time"

	jwtgo "github.com/form3tech-oss/jwt-go"
	"github.com/zeebo/errs"
)

var ErrJwt = errs.Class("jwt")

var (
	ErrExpired        = errors.New("token is expired")
	ErrMissingSubject = errors.New("token missing 'sub' claim")
	ErrMissingExpiry  = errors.New("token missing 'exp' claim")
)

type Config struct {
	Secret    string `help:"与用户服务共享的签名密钥" releaseDefault:"" default:"change-this-in-production"`
	Algorithm string `help:"签名算法[HS256|HS384|HS512]" default:"HS512"`
}

// Jwt 校验外部用户服务签发的 token，本服务只读取 sub
type Jwt struct {
	secret []byte
	method jwtgo.SigningMethod
}

func NewJWT(conf *Config) (*Jwt, error) {
	if conf.Secret == "" {
		return nil, ErrJwt.New("jwt secret is empty")
	}
	method := jwtgo.GetSigningMethod(conf.Algorithm)
	if method == nil {
		return nil, ErrJwt.New("unsupported algorithm %q", conf.Algorithm)
	}
	if _, ok := method.(*jwtgo.SigningMethodHMAC); !ok {
		return nil, ErrJwt.New("algorithm %q is not a shared-secret algorithm", conf.Algorithm)
	}
	return &Jwt{secret: []byte(conf.Secret), method: method}, nil
}

// ValidateToken 校验签名、算法和有效期，exp 必填，返回 sub
func (j *Jwt) ValidateToken(tokenString string) (string, error) {
	token, err := jwtgo.Parse(tokenString, func(t *jwtgo.Token) (interface{}, error) {
		if t.Method.Alg() != j.method.Alg() {
			return nil, ErrJwt.New("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		var ve *jwtgo.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwtgo.ValidationErrorExpired != 0 {
			return "", ErrJwt.Wrap(ErrExpired)
		}
		return "", ErrJwt.Wrap(err)
	}
	if !token.Valid {
		return "", ErrJwt.New("invalid token")
	}
	claims, ok := token.Claims.(jwtgo.MapClaims)
	if !ok {
		return "", ErrJwt.New("invalid token claims")
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return "", ErrJwt.Wrap(ErrMissingExpiry)
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrJwt.Wrap(ErrMissingSubject)
	}
	return sub, nil
}

// CreateToken 签发 token，用于联调和测试
func (j *Jwt) CreateToken(subject string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expire := now.Add(ttl)
	claims := jwtgo.MapClaims{
		"iat": now.Unix(),
		"exp": expire.Unix(),
	}
	if subject != "" {
		claims["sub"] = subject
	}
	token, err := jwtgo.NewWithClaims(j.method, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, ErrJwt.Wrap(err)
	}
	return token, expire, nil
}
