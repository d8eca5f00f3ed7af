// Package authentication は利用者の識別トークンを発行・検証する
// APIサーバーを実装する。
//
// 本番の認証基盤の代役となるデモ用のサービスであり、固定の利用者
// リストから選択するだけでトークンを発行する。トークンの検証結果は
// 利用者名のみを返し、失敗の原因は外部に開示しない。
package authentication
