// Package migration はSQLiteデータベースのスキーマ管理を提供する。
// 各サービスはスキーマ定義をSQLファイルとして実行バイナリに埋め込み、
// 起動時に未適用のものだけを適用する。適用状態はデータベース内の
// バージョン管理テーブルで追跡する。
package migration

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strconv"
	"strings"
)

// step は1つのマイグレーションを表す。
type step struct {
	// version はファイル名の先頭の番号。適用順を決める。
	version int
	// name はファイル名から番号と拡張子を除いた説明。
	name string
	// path はファイルシステム内のファイルパス。
	path string
}

// Run はdir以下のマイグレーションファイルをバージョン順に適用する。
// 適用済みのバージョンはスキップするため、サービスの起動ごとに
// 繰り返し呼び出せる。ファイル名の形式: 000001_create_favorites.up.sql
func Run(db *sql.DB, fsys fs.FS, dir string) error {
	if err := prepareVersionTable(db); err != nil {
		return fmt.Errorf("バージョン管理テーブルの準備に失敗: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("適用済みバージョンの読み取りに失敗: %w", err)
	}

	steps, err := loadSteps(fsys, dir)
	if err != nil {
		return fmt.Errorf("マイグレーションファイルの読み込みに失敗: %w", err)
	}

	for _, s := range steps {
		if applied[s.version] {
			continue
		}
		if err := s.apply(db, fsys); err != nil {
			return fmt.Errorf("マイグレーション %06d_%s の適用に失敗: %w", s.version, s.name, err)
		}
		log.Printf("マイグレーション %06d_%s を適用しました", s.version, s.name)
	}
	return nil
}

// prepareVersionTable は適用済みバージョンを記録するテーブルを作成する。
func prepareVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)
	`)
	return err
}

// appliedVersions は適用済みのバージョン番号の集合を返す。
func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// loadSteps はdir以下のup.sqlファイルを収集してバージョン順に並べる。
// 名前が形式に合わないファイルは無視する。
func loadSteps(fsys fs.FS, dir string) ([]step, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var steps []step
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		number, name, found := strings.Cut(entry.Name(), "_")
		if !found {
			continue
		}
		version, err := strconv.Atoi(number)
		if err != nil {
			continue
		}

		steps = append(steps, step{
			version: version,
			name:    strings.TrimSuffix(name, ".up.sql"),
			path:    dir + "/" + entry.Name(),
		})
	}

	sort.Slice(steps, func(i, j int) bool {
		return steps[i].version < steps[j].version
	})
	return steps, nil
}

// apply はマイグレーションをトランザクション内で実行し、バージョンを記録する。
func (s step) apply(db *sql.DB, fsys fs.FS) error {
	content, err := fs.ReadFile(fsys, s.path)
	if err != nil {
		return fmt.Errorf("SQLファイルの読み込みに失敗: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("SQLの実行に失敗: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", s.version); err != nil {
		return fmt.Errorf("適用バージョンの記録に失敗: %w", err)
	}
	return tx.Commit()
}
