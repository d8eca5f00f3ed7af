// Package recipes はカクテルレシピのカタログを提供するAPIサーバーを実装する。
//
// 起動時に外部のレシピ取得元（IBA公式カクテルのJSONデータ）から
// カタログを読み込み、除外対象の食材を含むレシピを取り除いたうえで
// メモリ上に保持する。各レシピにはASCIIアートで描画したカクテル名
// （figlet_name）を付与する。
package recipes
