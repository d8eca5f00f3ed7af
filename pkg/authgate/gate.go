package authgate

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/cocktail/pkg/httpclient"
	"github.com/nao1215/cocktail/pkg/logging"
	"github.com/nao1215/cocktail/pkg/token"
)

// CookieName は識別トークンを運搬するクッキーの名前。
const CookieName = "user_token"

// tokenTTL はトークン自体の有効期間。
const tokenTTL = 900 * time.Second

// CookieMaxAge はクッキーのMax-Age（秒）。
// トークンの有効期間（900秒）より意図的に短くすることで、トークンの
// 失効直前にクッキーが提示される競合を避ける。
const CookieMaxAge = 780

// State は呼び出し元の認証状態。
type State int

const (
	// StateUnknown は認証が無効、またはクッキーが提示されなかった状態。
	StateUnknown State = iota
	// StateAuthenticated はトークンの検証に成功した状態。
	StateAuthenticated
	// StateRejected はトークンが提示されたが無効だった状態。
	StateRejected
)

// Identity はリクエスト単位で導出される呼び出し元の識別情報。
// リクエストを跨いで保持してはならない。
type Identity struct {
	// Subject は利用者名。未認証の場合は "unknown"。
	Subject string
	// State は認証状態。
	State State
}

// Action は認証ゲートの決定種別。
type Action int

const (
	// ActionProceed は処理を続行してよいことを示す。
	ActionProceed Action = iota
	// ActionRedirect はログイン画面へリダイレクトすべきことを示す。
	ActionRedirect
	// ActionFail は認証状態を確認できず、エラーを返すべきことを示す。
	ActionFail
)

// Decision は認証ゲートによるリクエスト単位の決定。
type Decision struct {
	// Action は決定種別。
	Action Action
	// Identity は導出された呼び出し元の識別情報。
	Identity Identity
	// Target はActionRedirectの場合のリダイレクト先URL。
	Target string
	// Reason はActionFailの場合の原因。
	Reason error
}

// CheckFunc はトークンを検証して利用者名を返す関数。
// トークンが無効な場合は空文字列を返す。問い合わせ自体に失敗した場合のみ
// エラーを返す。
type CheckFunc func(ctx context.Context, tokenString string) (string, error)

// Gate はリクエストの認証状態を解決する認証ゲート。
// 設定は起動時に固定され、以降変更されない。
type Gate struct {
	// enabled は認証が有効かどうか。
	enabled bool
	// redirectURL は未認証の利用者を誘導するログイン画面のURL。
	redirectURL string
	// check はトークンを検証する関数。
	check CheckFunc
}

// New は認証が有効なゲートを生成する。
// redirectURLには未認証の利用者を誘導するログイン画面のURLを指定する。
func New(redirectURL string, check CheckFunc) *Gate {
	return &Gate{
		enabled:     true,
		redirectURL: redirectURL,
		check:       check,
	}
}

// NewDisabled は認証が無効なゲートを生成する。
// 全リクエストを匿名利用者（unknown）として通過させる。
func NewDisabled() *Gate {
	return &Gate{}
}

// Resolve はリクエストの認証状態を解決する。
// 呼び出し元はActionProceed以外の決定で処理を続行してはならない。
func (g *Gate) Resolve(ctx context.Context, r *http.Request) Decision {
	if !g.enabled {
		return Decision{
			Action:   ActionProceed,
			Identity: Identity{Subject: "unknown", State: StateUnknown},
		}
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		logging.Debugf("クッキー%sが未提示のためログイン画面へリダイレクト", CookieName)
		return Decision{
			Action:   ActionRedirect,
			Identity: Identity{State: StateUnknown},
			Target:   g.redirectTarget(r),
		}
	}

	subject, err := g.check(ctx, cookie.Value)
	if err != nil {
		// 認証状態が不明なリクエストは匿名として通過させない
		log.Printf("認証状態を確認できないためリクエストを拒否: %v", err)
		return Decision{
			Action:   ActionFail,
			Identity: Identity{State: StateUnknown},
			Reason:   err,
		}
	}
	if subject == "" {
		logging.Debugf("トークンが無効のためログイン画面へリダイレクト")
		return Decision{
			Action:   ActionRedirect,
			Identity: Identity{State: StateRejected},
			Target:   g.redirectTarget(r),
		}
	}

	logging.Debugf("利用者%sとして認証", subject)
	return Decision{
		Action:   ActionProceed,
		Identity: Identity{Subject: subject, State: StateAuthenticated},
	}
}

// redirectTarget は元のリクエストへ戻るためのredirect_urlを付与した
// ログイン画面のURLを組み立てる。
func (g *Gate) redirectTarget(r *http.Request) string {
	query := url.Values{"redirect_url": {r.URL.RequestURI()}}
	return g.redirectURL + "?" + query.Encode()
}

// RemoteChecker はauthenticationサービスに問い合わせるCheckFuncを返す。
// トークンが無効な場合、authenticationサービスは原因（形式不正・署名不正・
// 期限切れ）を区別せず空文字列を返す。
func RemoteChecker(client *httpclient.Client) CheckFunc {
	return func(ctx context.Context, tokenString string) (string, error) {
		var subject string
		if err := client.GetJSON(ctx, "/api/check/"+url.PathEscape(tokenString), &subject); err != nil {
			return "", fmt.Errorf("認証サービスへの問い合わせに失敗: %w", err)
		}
		return subject, nil
	}
}

// IssueForSelectedUser はログイン画面で選択された利用者のトークンを発行し、
// クッキーに設定すべきMax-Age（秒）とあわせて返す。
func IssueForSelectedUser(subject, secret string) (string, int, error) {
	tokenString, err := token.Issue(subject, tokenTTL, secret)
	if err != nil {
		return "", 0, fmt.Errorf("トークンの発行に失敗: %w", err)
	}
	return tokenString, CookieMaxAge, nil
}
