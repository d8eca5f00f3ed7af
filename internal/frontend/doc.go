// Package frontend は各バックエンドサービスの応答を合成して提供する
// フロントエンドサーバーを実装する。
//
// GUIページの提供にあたっては、まず認証ゲートで呼び出し元の認証状態を
// 解決し、通過したリクエストに対してのみrecipes・analytics・favoritesの
// 各サービスへ問い合わせる。有効になっている機能の取得が1つでも失敗した
// 場合は、部分的なページを返さずリクエスト全体をエラーとする。
package frontend
