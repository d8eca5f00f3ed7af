// Package authgate はリクエスト単位の認証ゲートを提供する。
//
// クッキーで運搬される識別トークンをauthenticationサービスに照会し、
// 処理続行・ログイン画面へのリダイレクト・エラーのいずれかを決定する。
// 照会自体に失敗した場合は匿名として通過させず、エラーとする
// （フェイルクローズ）。
package authgate
