// Package favorites は利用者ごとのお気に入りドリンクを管理する
// APIサーバーを実装する。
//
// お気に入りはSQLiteデータベースに永続化する。APIへのアクセスには
// X-Access-Keyヘッダーによる共有アクセスキーの提示が必要となる。
package favorites
