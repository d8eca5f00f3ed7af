package favorites

import (
	"context"
	"database/sql"
	"fmt"
)

// store はお気に入りの永続化を担うSQLiteストア。
type store struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// listFavorites は利用者のお気に入りドリンク名の一覧を返す。
// 同じドリンクを複数回追加しても一覧には1回だけ現れる。
func (s *store) listFavorites(ctx context.Context, user string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT drink FROM favorites WHERE user = ?", user)
	if err != nil {
		return nil, fmt.Errorf("お気に入り一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	favorites := []string{}
	for rows.Next() {
		var drink string
		if err := rows.Scan(&drink); err != nil {
			return nil, fmt.Errorf("お気に入り行の読み取りに失敗: %w", err)
		}
		favorites = append(favorites, drink)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("お気に入り一覧の走査に失敗: %w", err)
	}
	return favorites, nil
}

// addFavorite は利用者のお気に入りにドリンクを追加する。
func (s *store) addFavorite(ctx context.Context, user, drink string) error {
	if _, err := s.db.ExecContext(ctx, "INSERT INTO favorites (user, drink) VALUES (?, ?)", user, drink); err != nil {
		return fmt.Errorf("お気に入りの追加に失敗: %w", err)
	}
	return nil
}

// ping はデータベースとの疎通を確認する。
func (s *store) ping(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM favorites").Scan(&count); err != nil {
		return fmt.Errorf("データベースの疎通確認に失敗: %w", err)
	}
	return nil
}
