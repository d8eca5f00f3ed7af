// Package token は共有シークレットで署名された時限付きアイデンティティ
// トークンの発行と検証を提供する。
//
// トークンはHS256で署名されたJWTであり、クレームには利用者名 "user" と
// 有効期限 "exp" のみを持つ。サーバー側に状態を持たないため発行後の
// 失効手段はなく、有効期限の経過によってのみ無効になる。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 検証エラーの種別。サービス境界ではこれらを区別せず「無効なトークン」
// として扱うが、ログ出力のために内部では区別を残す。
var (
	// ErrMalformed はトークンの構造や署名アルゴリズムが不正なことを表す。
	ErrMalformed = errors.New("トークンの形式が不正")
	// ErrInvalidSignature は署名が共有シークレットと一致しないことを表す。
	ErrInvalidSignature = errors.New("トークンの署名が不正")
	// ErrExpired はトークンの有効期限が切れていることを表す。
	ErrExpired = errors.New("トークンの有効期限切れ")
)

// claims はトークンに含まれるクレーム。ワイヤ上には "user" と "exp" のみ
// を持たせ、他サービスが発行したトークンとの互換性を保つ。
type claims struct {
	// User は認証された利用者名。
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Issue は利用者名と有効期間からHS256署名付きトークンを生成する。
// 有効期限は現在時刻にttlを加えた時刻となる。
func Issue(subject string, ttl time.Duration, secret string) (string, error) {
	c := claims{
		User: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、含まれる利用者名を返す。
//
// 署名の検証は有効期限の確認より先に行われるため、改ざんされた
// トークンは期限切れかどうかにかかわらず ErrInvalidSignature となる。
// 署名の比較は定数時間で行われる。構造や署名アルゴリズムが不正な
// トークン、および利用者名が空のトークンは ErrMalformed となる。
func Verify(tokenString, secret string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("想定外の署名アルゴリズム: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		default:
			return "", ErrMalformed
		}
	}

	if c.User == "" {
		return "", ErrMalformed
	}
	return c.User, nil
}
