// Package analytics はレシピカタログを集計するAPIサーバーを実装する。
//
// リクエストのたびにrecipesサービスからレシピ一覧を取得し、
// 使用頻度の高い食材の上位N件を返す。集計結果は保持しない。
package analytics
