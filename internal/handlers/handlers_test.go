package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jfuentes/recipebox/internal/auth"
	"github.com/jfuentes/recipebox/internal/cache"
	"github.com/jfuentes/recipebox/internal/middleware"
	"github.com/jfuentes/recipebox/internal/models"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
	"github.com/jfuentes/recipebox/internal/service"
	"github.com/jfuentes/recipebox/internal/storage"
)

type testAPI struct {
	mux    *http.ServeMux
	users  *service.UserService
	tokens *service.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := service.NewUserService(storage.NewMemoryUserStorage(), 5)
	tokens := service.NewTokenService(users, auth.NewTokenManager(auth.NewMemoryTokenStore(), 20))
	tags := service.NewAttributeService(storage.NewMemoryAttributeStorage(), "tag")
	ingredients := service.NewAttributeService(storage.NewMemoryAttributeStorage(), "ingredient")
	recipeCache := cache.NewRecipeCache(128, nil, 0)
	recipes := service.NewRecipeService(storage.NewMemoryRecipeStorage(), tags, ingredients, recipeCache)

	userHandler := NewUserHandler(users, tokens)
	tagHandler := NewAttributeHandler(tags)
	ingredientHandler := NewAttributeHandler(ingredients)
	recipeHandler := NewRecipeHandler(recipes)

	authMW := middleware.NewAuthMiddleware(tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("/user/create/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		userHandler.Create(w, r)
	})
	mux.HandleFunc("/user/token/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		userHandler.Token(w, r)
	})
	mux.HandleFunc("/user/me/", authMW.RequireAuth(userHandler.Me))
	mux.HandleFunc("/recipes/tags/", authMW.RequireAuth(tagHandler.Collection))
	mux.HandleFunc("/recipes/ingredients/", authMW.RequireAuth(ingredientHandler.Collection))
	mux.HandleFunc("/recipes/recipes/", authMW.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/recipes/recipes/" {
			recipeHandler.Collection(w, r)
		} else {
			recipeHandler.Item(w, r)
		}
	}))

	return &testAPI{mux: mux, users: users, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	ctx := context.Background()
	if _, err := a.users.Register(ctx, email, "secret1", "Test User"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	token, err := a.tokens.Issue(ctx, email, "secret1")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	return token
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
}

func TestCreateUser_Success(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/user/create/", "", map[string]string{
		"email":    "new@example.com",
		"password": "secret1",
		"name":     "New User",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	raw := rec.Body.Bytes()
	if bytes.Contains(raw, []byte("secret1")) {
		t.Error("response must not contain the password")
	}

	var user usermodel.User
	if err := json.Unmarshal(raw, &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Email != "new@example.com" {
		t.Errorf("expected email 'new@example.com', got '%s'", user.Email)
	}
	if user.ID == "" {
		t.Error("expected a generated user id")
	}
}

func TestCreateUser_ShortPassword(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/user/create/", "", map[string]string{
		"email":    "new@example.com",
		"password": "pw",
		"name":     "New User",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	api.registerAndLogin(t, "taken@example.com")

	rec := api.do(t, http.MethodPost, "/user/create/", "", map[string]string{
		"email":    "Taken@Example.COM",
		"password": "secret1",
		"name":     "Imposter",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate email, got %d", rec.Code)
	}
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/user/create/", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
}

func TestToken_Success(t *testing.T) {
	api := newTestAPI(t)
	api.registerAndLogin(t, "login@example.com")

	rec := api.do(t, http.MethodPost, "/user/token/", "", map[string]string{
		"email":    "login@example.com",
		"password": "secret1",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	decodeJSON(t, rec, &resp)
	if len(resp["token"]) != 40 {
		t.Errorf("expected a 40-char token, got %q", resp["token"])
	}
}

func TestToken_BadCredentials(t *testing.T) {
	api := newTestAPI(t)
	api.registerAndLogin(t, "login@example.com")

	rec := api.do(t, http.MethodPost, "/user/token/", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrongpass",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad credentials, got %d", rec.Code)
	}
}

func TestMe_RequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/user/me/", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestMe_Get(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "me@example.com")

	rec := api.do(t, http.MethodGet, "/user/me/", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user usermodel.User
	decodeJSON(t, rec, &user)
	if user.Email != "me@example.com" {
		t.Errorf("expected own profile, got email '%s'", user.Email)
	}
}

func TestMe_Patch(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "me@example.com")

	rec := api.do(t, http.MethodPatch, "/user/me/", token, map[string]string{
		"name": "Renamed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var user usermodel.User
	decodeJSON(t, rec, &user)
	if user.Name != "Renamed" {
		t.Errorf("expected name 'Renamed', got '%s'", user.Name)
	}
}

func TestMe_PostNotAllowed(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "me@example.com")

	rec := api.do(t, http.MethodPost, "/user/me/", token, map[string]string{"name": "x"})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST, got %d", rec.Code)
	}
}

func TestTags_CreateAndList(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "tags@example.com")

	for _, name := range []string{"Vegan", "Dessert"} {
		rec := api.do(t, http.MethodPost, "/recipes/tags/", token, map[string]string{"name": name})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 creating tag %q, got %d", name, rec.Code)
		}
	}

	rec := api.do(t, http.MethodGet, "/recipes/tags/", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tags []models.Attribute
	decodeJSON(t, rec, &tags)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "Dessert" || tags[1].Name != "Vegan" {
		t.Errorf("expected name-ordered tags, got %q then %q", tags[0].Name, tags[1].Name)
	}
}

func TestTags_EmptyName(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "tags@example.com")

	rec := api.do(t, http.MethodPost, "/recipes/tags/", token, map[string]string{"name": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank name, got %d", rec.Code)
	}
}

func TestTags_ScopedToOwner(t *testing.T) {
	api := newTestAPI(t)
	alice := api.registerAndLogin(t, "alice@example.com")
	bob := api.registerAndLogin(t, "bob@example.com")

	api.do(t, http.MethodPost, "/recipes/tags/", alice, map[string]string{"name": "Private"})

	rec := api.do(t, http.MethodGet, "/recipes/tags/", bob, nil)
	var tags []models.Attribute
	decodeJSON(t, rec, &tags)
	if len(tags) != 0 {
		t.Errorf("expected bob to see no tags, got %d", len(tags))
	}
}

func TestIngredients_CreateAndList(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "ing@example.com")

	rec := api.do(t, http.MethodPost, "/recipes/ingredients/", token, map[string]string{"name": "Salt"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/recipes/ingredients/", token, nil)
	var ingredients []models.Attribute
	decodeJSON(t, rec, &ingredients)
	if len(ingredients) != 1 || ingredients[0].Name != "Salt" {
		t.Errorf("expected one ingredient 'Salt', got %+v", ingredients)
	}
}

func (a *testAPI) createTag(t *testing.T, token, name string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/recipes/tags/", token, map[string]string{"name": name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create tag %q: got %d", name, rec.Code)
	}
	var tag models.Attribute
	decodeJSON(t, rec, &tag)
	return tag.ID
}

func (a *testAPI) createRecipe(t *testing.T, token string, body map[string]interface{}) *models.Recipe {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/recipes/recipes/", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create recipe: got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var recipe models.Recipe
	decodeJSON(t, rec, &recipe)
	return &recipe
}

func TestRecipes_Create(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "cook@example.com")
	tagID := api.createTag(t, token, "Dinner")

	recipe := api.createRecipe(t, token, map[string]interface{}{
		"title":        "Carbonara",
		"time_minutes": 25,
		"price":        9.50,
		"tags":         []string{tagID},
	})

	if recipe.Title != "Carbonara" {
		t.Errorf("expected title 'Carbonara', got '%s'", recipe.Title)
	}
	if recipe.TimeMinutes != 25 || recipe.Price != 9.50 {
		t.Errorf("unexpected fields: %+v", recipe)
	}
	if len(recipe.TagIDs) != 1 || recipe.TagIDs[0] != tagID {
		t.Errorf("expected tag link %q, got %v", tagID, recipe.TagIDs)
	}
}

func TestRecipes_CreateMissingTitle(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "cook@example.com")

	rec := api.do(t, http.MethodPost, "/recipes/recipes/", token, map[string]interface{}{
		"time_minutes": 5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a title, got %d", rec.Code)
	}
}

func TestRecipes_CreateWithForeignTag(t *testing.T) {
	api := newTestAPI(t)
	alice := api.registerAndLogin(t, "alice@example.com")
	bob := api.registerAndLogin(t, "bob@example.com")
	aliceTag := api.createTag(t, alice, "Hers")

	rec := api.do(t, http.MethodPost, "/recipes/recipes/", bob, map[string]interface{}{
		"title": "Stolen",
		"tags":  []string{aliceTag},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a foreign tag reference, got %d", rec.Code)
	}
}

func TestRecipes_GetScopedToOwner(t *testing.T) {
	api := newTestAPI(t)
	alice := api.registerAndLogin(t, "alice@example.com")
	bob := api.registerAndLogin(t, "bob@example.com")

	recipe := api.createRecipe(t, alice, map[string]interface{}{"title": "Secret Soup"})

	rec := api.do(t, http.MethodGet, fmt.Sprintf("/recipes/recipes/%s/", recipe.ID), bob, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's recipe, got %d", rec.Code)
	}
}

func TestRecipes_Put(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "cook@example.com")
	recipe := api.createRecipe(t, token, map[string]interface{}{
		"title":        "Draft",
		"time_minutes": 10,
		"price":        2.0,
	})

	rec := api.do(t, http.MethodPut, fmt.Sprintf("/recipes/recipes/%s/", recipe.ID), token, map[string]interface{}{
		"title":        "Final",
		"time_minutes": 45,
		"price":        12.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var updated models.Recipe
	decodeJSON(t, rec, &updated)
	if updated.Title != "Final" || updated.TimeMinutes != 45 {
		t.Errorf("unexpected update result: %+v", updated)
	}
}

func TestRecipes_Patch(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "cook@example.com")
	recipe := api.createRecipe(t, token, map[string]interface{}{
		"title":        "Original",
		"time_minutes": 30,
		"price":        5.0,
	})

	rec := api.do(t, http.MethodPatch, fmt.Sprintf("/recipes/recipes/%s/", recipe.ID), token, map[string]interface{}{
		"title": "Patched",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var patched models.Recipe
	decodeJSON(t, rec, &patched)
	if patched.Title != "Patched" {
		t.Errorf("expected title 'Patched', got '%s'", patched.Title)
	}
	if patched.TimeMinutes != 30 || patched.Price != 5.0 {
		t.Errorf("patch must leave other fields intact: %+v", patched)
	}
}

func TestRecipes_Delete(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "cook@example.com")
	recipe := api.createRecipe(t, token, map[string]interface{}{"title": "Ephemeral"})

	rec := api.do(t, http.MethodDelete, fmt.Sprintf("/recipes/recipes/%s/", recipe.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/recipes/recipes/%s/", recipe.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRecipes_MalformedID(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "cook@example.com")

	rec := api.do(t, http.MethodGet, "/recipes/recipes/not-a-uuid/", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a malformed id, got %d", rec.Code)
	}
}

func TestRecipes_ListNewestFirst(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "cook@example.com")

	api.createRecipe(t, token, map[string]interface{}{"title": "First"})
	api.createRecipe(t, token, map[string]interface{}{"title": "Second"})

	rec := api.do(t, http.MethodGet, "/recipes/recipes/", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var recipes []models.Recipe
	decodeJSON(t, rec, &recipes)
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].Title != "Second" {
		t.Errorf("expected newest recipe first, got '%s'", recipes[0].Title)
	}
}
