package recipes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testCatalog はテスト用のレシピカタログを生成する。
func testCatalog() []Recipe {
	return []Recipe{
		{
			Name: "Mojito",
			Ingredients: []Ingredient{
				{Unit: "cl", Amount: 4.5, Ingredient: "White rum"},
				{Special: "Sprigs of mint"},
			},
		},
		{
			Name: "Vodka Martini",
			Ingredients: []Ingredient{
				{Unit: "cl", Amount: 6, Ingredient: "Vodka"},
			},
		},
		{
			Name: "Espresso Martini",
			Ingredients: []Ingredient{
				{Unit: "cl", Amount: 5, Ingredient: "Vodka"},
				{Unit: "cl", Amount: 1, Ingredient: "Coffee liqueur"},
			},
		},
	}
}

// setupTestServer はテスト用のrecipesサーバーを構築する。
func setupTestServer(t *testing.T, catalog []Recipe) *Server {
	t.Helper()

	s := &Server{
		router:  gin.New(),
		port:    "0",
		catalog: catalog,
		host:    "host test-machine",
	}
	s.setupRoutes()
	return s
}

// doGet はテスト用のGETリクエストを実行し、レスポンスを返すヘルパー関数。
func doGet(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// TestHandleList はレシピ一覧取得を検証する。
func TestHandleList(t *testing.T) {
	t.Parallel()

	t.Run("全レシピが返ること", func(t *testing.T) {
		t.Parallel()

		s := setupTestServer(t, testCatalog())
		w := doGet(s, "/api/list")

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}

		var got []Recipe
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("レシピ数 = %d, want 3", len(got))
		}

		// シャッフルされるため名前の集合で比較する
		names := make(map[string]bool)
		for _, recipe := range got {
			names[recipe.Name] = true
		}
		for _, want := range []string{"Mojito", "Vodka Martini", "Espresso Martini"} {
			if !names[want] {
				t.Errorf("レシピ%qが含まれていない", want)
			}
		}
	})

	t.Run("filterでカクテル名の部分一致に絞り込めること", func(t *testing.T) {
		t.Parallel()

		s := setupTestServer(t, testCatalog())
		w := doGet(s, "/api/list?filter=Martini")

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}

		var got []Recipe
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("レシピ数 = %d, want 2", len(got))
		}
		for _, recipe := range got {
			if !strings.Contains(recipe.Name, "Martini") {
				t.Errorf("絞り込み結果に%qが含まれている", recipe.Name)
			}
		}
	})

	t.Run("filterは大文字小文字を区別すること", func(t *testing.T) {
		t.Parallel()

		s := setupTestServer(t, testCatalog())
		w := doGet(s, "/api/list?filter=martini")

		var got []Recipe
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("レシピ数 = %d, want 0", len(got))
		}
	})

	t.Run("一致するレシピがない場合は空配列が返ること", func(t *testing.T) {
		t.Parallel()

		s := setupTestServer(t, testCatalog())
		w := doGet(s, "/api/list?filter=Negroni")

		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("ボディ = %q, want %q", body, "[]")
		}
	})

	t.Run("カタログが空でも空配列が返ること", func(t *testing.T) {
		t.Parallel()

		s := setupTestServer(t, []Recipe{})
		w := doGet(s, "/api/list")

		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("ボディ = %q, want %q", body, "[]")
		}
	})
}

// TestHandleHealth はヘルスチェックを検証する。
func TestHandleHealth(t *testing.T) {
	t.Parallel()

	s := setupTestServer(t, testCatalog())
	w := doGet(s, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
	}
	want := "Hello from recipes API server on host test-machine!\n"
	if w.Body.String() != want {
		t.Errorf("ボディ = %q, want %q", w.Body.String(), want)
	}
}

// TestExcludeIngredients は除外食材によるレシピの取り除きを検証する。
func TestExcludeIngredients(t *testing.T) {
	t.Parallel()

	t.Run("除外食材を含むレシピが取り除かれること", func(t *testing.T) {
		t.Parallel()

		catalog := []Recipe{
			{Name: "Yellow Bird", Ingredients: []Ingredient{{Ingredient: "Galliano"}}},
			{Name: "Mojito", Ingredients: []Ingredient{{Ingredient: "White rum"}}},
		}

		kept := excludeIngredients(catalog, defaultExcludedIngredients)
		if len(kept) != 1 {
			t.Fatalf("レシピ数 = %d, want 1", len(kept))
		}
		if kept[0].Name != "Mojito" {
			t.Errorf("残ったレシピ = %q, want %q", kept[0].Name, "Mojito")
		}
	})

	t.Run("除外食材の照合は大文字小文字を区別しないこと", func(t *testing.T) {
		t.Parallel()

		catalog := []Recipe{
			{Name: "Yellow Bird", Ingredients: []Ingredient{{Ingredient: "GALLIANO"}}},
		}

		kept := excludeIngredients(catalog, "galliano")
		if len(kept) != 0 {
			t.Errorf("レシピ数 = %d, want 0", len(kept))
		}
	})

	t.Run("除外食材を含まないレシピはすべて残ること", func(t *testing.T) {
		t.Parallel()

		catalog := testCatalog()
		kept := excludeIngredients(catalog, defaultExcludedIngredients)
		if len(kept) != len(catalog) {
			t.Errorf("レシピ数 = %d, want %d", len(kept), len(catalog))
		}
	})

	t.Run("除外リストが空の場合はすべて残ること", func(t *testing.T) {
		t.Parallel()

		catalog := testCatalog()
		kept := excludeIngredients(catalog, "")
		if len(kept) != len(catalog) {
			t.Errorf("レシピ数 = %d, want %d", len(kept), len(catalog))
		}
	})

	t.Run("食材名を持たないspecial材料は除外対象にならないこと", func(t *testing.T) {
		t.Parallel()

		catalog := []Recipe{
			{Name: "Mojito", Ingredients: []Ingredient{{Special: "Sprigs of mint"}}},
		}

		kept := excludeIngredients(catalog, defaultExcludedIngredients)
		if len(kept) != 1 {
			t.Errorf("レシピ数 = %d, want 1", len(kept))
		}
	})
}

// TestRenderFiglet はASCIIアートの描画を検証する。
func TestRenderFiglet(t *testing.T) {
	t.Parallel()

	t.Run("ASCII文字のカクテル名を描画できること", func(t *testing.T) {
		t.Parallel()

		if art := renderFiglet("Mojito"); art == "" {
			t.Error("renderFiglet()が空文字列を返した")
		}
	})

	t.Run("非ASCII文字を含むカクテル名でもパニックしないこと", func(t *testing.T) {
		t.Parallel()

		// IBAのデータには Piña Colada のような名前が含まれる
		if art := renderFiglet("Piña Colada"); art == "" {
			t.Error("renderFiglet()が空文字列を返した")
		}
	})
}

// TestLoadCatalog はレシピ取得元からのカタログ読み込みを検証する。
func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("取得したカタログに除外とASCIIアート付与が適用されること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"name": "Yellow Bird", "ingredients": [{"unit": "cl", "amount": 3, "ingredient": "Galliano"}]},
				{"name": "Mojito", "ingredients": [{"unit": "cl", "amount": 4.5, "ingredient": "White rum"}]}
			]`))
		}))
		defer ts.Close()

		catalog, err := loadCatalog(t.Context(), ts.URL, defaultExcludedIngredients)
		if err != nil {
			t.Fatalf("loadCatalog()でエラーが発生: %v", err)
		}

		if len(catalog) != 1 {
			t.Fatalf("レシピ数 = %d, want 1", len(catalog))
		}
		if catalog[0].Name != "Mojito" {
			t.Errorf("レシピ名 = %q, want %q", catalog[0].Name, "Mojito")
		}
		if catalog[0].FigletName == "" {
			t.Error("FigletNameが設定されていない")
		}
	})

	t.Run("取得元がエラーを返した場合はエラーとなること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		if _, err := loadCatalog(t.Context(), ts.URL, ""); err == nil {
			t.Fatal("loadCatalog()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("取得元に接続できない場合はエラーとなること", func(t *testing.T) {
		t.Parallel()

		if _, err := loadCatalog(t.Context(), "http://127.0.0.1:1", ""); err == nil {
			t.Fatal("loadCatalog()がエラーを返すべきだが、nilが返った")
		}
	})
}

// TestCheckServiceURL は接続先URLの検証を検証する。
func TestCheckServiceURL(t *testing.T) {
	t.Parallel()

	t.Run("httpのURLが許容されること", func(t *testing.T) {
		t.Parallel()

		if err := checkServiceURL("http://recipes:1338"); err != nil {
			t.Errorf("checkServiceURL()でエラーが発生: %v", err)
		}
	})

	t.Run("httpsのURLが許容されること", func(t *testing.T) {
		t.Parallel()

		if err := checkServiceURL("https://recipes.example.com"); err != nil {
			t.Errorf("checkServiceURL()でエラーが発生: %v", err)
		}
	})

	t.Run("スキームがないURLが拒否されること", func(t *testing.T) {
		t.Parallel()

		if err := checkServiceURL("recipes:1338"); err == nil {
			t.Error("checkServiceURL()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("http以外のスキームが拒否されること", func(t *testing.T) {
		t.Parallel()

		if err := checkServiceURL("ftp://recipes:1338"); err == nil {
			t.Error("checkServiceURL()がエラーを返すべきだが、nilが返った")
		}
	})
}
