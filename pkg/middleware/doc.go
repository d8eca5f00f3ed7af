// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// パニックリカバリ、応答元を示す診断ヘッダーの付与、
// リクエストIDの採番など、全サービスで共通して使用するミドルウェアを含む。
package middleware
