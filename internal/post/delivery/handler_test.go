package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authdelivery "acebook-backend/internal/auth/delivery"
	authrepo "acebook-backend/internal/auth/repository"
	authusecase "acebook-backend/internal/auth/usecase"
	"acebook-backend/internal/post/domain"
	"acebook-backend/internal/post/repository"
	"acebook-backend/internal/post/usecase"
	"acebook-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	tokens *token.Service
	posts  *repository.MemoryPostRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService(testSecret, 10*time.Minute)
	require.NoError(t, err)
	authUC := authusecase.NewAuthUsecase(authrepo.NewMemoryUserRepository(), tokens, 6)
	posts := repository.NewMemoryPostRepository()
	h := NewPostHandler(usecase.NewPostUsecase(posts), authUC)

	r := gin.New()
	protected := r.Group("")
	protected.Use(authdelivery.AuthMiddleware(authUC))
	{
		protected.GET("/posts", h.Index)
		protected.POST("/posts", h.Create)
		protected.GET("/posts/:id", h.Show)
		protected.GET("/profile/:user_id", h.FindPostsByUserId)
		protected.POST("/posts/like/:id", h.Like)
		protected.DELETE("/posts/like/:id", h.Unlike)
	}
	return &testEnv{router: r, tokens: tokens, posts: posts}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.tokens.Generate(userID)
	require.NoError(t, err)
	return tok
}

// backdatedToken mirrors a client that logged in five minutes ago.
func backdatedToken(t *testing.T, userID string) (string, time.Time) {
	t.Helper()
	now := time.Now()
	issued := now.Add(-5 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, token.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed, issued
}

func (e *testEnv) assertRenewed(t *testing.T, body map[string]any, userID string, prevIAT time.Time) {
	t.Helper()
	raw, ok := body["token"].(string)
	require.True(t, ok, "response must carry a token")

	renewed, err := e.tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, renewed.UserID)
	assert.True(t, renewed.IssuedAtTime().After(prevIAT), "iat %s not after %s", renewed.IssuedAtTime(), prevIAT)
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (e *testEnv) createPost(t *testing.T, bearer, message string) string {
	t.Helper()
	w, body := e.do(t, http.MethodPost, "/posts", bearer, map[string]string{"message": message})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body["post_id"].(string)
}

func postsOf(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	raw, ok := body["posts"].([]any)
	require.True(t, ok, "posts must be an array")
	out := make([]map[string]any, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.(map[string]any))
	}
	return out
}

func TestCreate_UsesTokenSubject(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(t, http.MethodPost, "/posts", env.token(t, "alice"), map[string]string{
		"message": "hello",
		"user_id": "mallory",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "OK", body["message"])
	assert.NotEmpty(t, body["token"])

	all, err := env.posts.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].UserID)
	assert.Equal(t, body["post_id"], all[0].ID)
}

func TestCreate_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	for _, bearer := range []string{"", "garbage"} {
		w, body := env.do(t, http.MethodPost, "/posts", bearer, map[string]string{"message": "hello"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, body, "token")
	}

	all, err := env.posts.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_InvalidMessage(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "alice")

	tests := []struct {
		name string
		body any
	}{
		{name: "missing message", body: map[string]string{}},
		{name: "blank message", body: map[string]string{"message": "   "}},
		{name: "too long", body: map[string]string{"message": strings.Repeat("x", domain.MaxMessageLength+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.do(t, http.MethodPost, "/posts", tok, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotContains(t, body, "token")
		})
	}
}

func TestIndex_RenewsTokenWithLaterIssuedAt(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "alice")
	env.createPost(t, tok, "first")

	prev, err := env.tokens.Parse(tok)
	require.NoError(t, err)

	w, body := env.do(t, http.MethodGet, "/posts", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	renewed, err := env.tokens.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "alice", renewed.UserID)
	assert.True(t, renewed.IssuedAtTime().After(prev.IssuedAtTime()))

	posts := postsOf(t, body)
	require.Len(t, posts, 1)
	assert.Equal(t, []any{}, posts[0]["likes"])
}

func TestIndex_EmptyFeedIsArray(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(t, http.MethodGet, "/posts", env.token(t, "alice"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, postsOf(t, body))
}

func TestProfile_OnlyThatUserNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	a, b := env.token(t, "user-a"), env.token(t, "user-b")

	env.createPost(t, a, "a1")
	env.createPost(t, b, "b1")
	env.createPost(t, a, "a2")
	env.createPost(t, b, "b2")

	for i := 0; i < 2; i++ {
		w, body := env.do(t, http.MethodGet, "/profile/user-b", a, nil)
		require.Equal(t, http.StatusOK, w.Code)

		posts := postsOf(t, body)
		require.Len(t, posts, 2)
		assert.Equal(t, "b2", posts[0]["message"])
		assert.Equal(t, "b1", posts[1]["message"])
		for _, p := range posts {
			assert.Equal(t, "user-b", p["user_id"])
		}
	}
}

func TestLikeTwice_SingleEntry(t *testing.T) {
	env := newTestEnv(t)
	author, fan := env.token(t, "author"), env.token(t, "fan")
	id := env.createPost(t, author, "like me")

	for i := 0; i < 2; i++ {
		w, body := env.do(t, http.MethodPost, "/posts/like/"+id, fan, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Post liked", body["message"])
		assert.NotEmpty(t, body["token"])
	}

	_, body := env.do(t, http.MethodGet, "/posts", fan, nil)
	posts := postsOf(t, body)
	require.Len(t, posts, 1)
	assert.Equal(t, []any{"fan"}, posts[0]["likes"])

	w, body := env.do(t, http.MethodDelete, "/posts/like/"+id, fan, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post unliked", body["message"])

	_, body = env.do(t, http.MethodGet, "/posts", fan, nil)
	assert.Equal(t, []any{}, postsOf(t, body)[0]["likes"])
}

func TestLike_UnknownPost(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "fan")

	w, body := env.do(t, http.MethodPost, "/posts/like/does-not-exist", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, body, "token")

	w, _ = env.do(t, http.MethodDelete, "/posts/like/does-not-exist", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate_RenewsBackdatedToken(t *testing.T) {
	env := newTestEnv(t)
	tok, issued := backdatedToken(t, "alice")

	w, body := env.do(t, http.MethodPost, "/posts", tok, map[string]string{"message": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	env.assertRenewed(t, body, "alice", issued)
}

func TestLike_RenewsBackdatedToken(t *testing.T) {
	env := newTestEnv(t)
	id := env.createPost(t, env.token(t, "author"), "like me")
	tok, issued := backdatedToken(t, "fan")

	w, body := env.do(t, http.MethodPost, "/posts/like/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.assertRenewed(t, body, "fan", issued)

	w, body = env.do(t, http.MethodDelete, "/posts/like/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.assertRenewed(t, body, "fan", issued)
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)
	tok, issued := backdatedToken(t, "alice")
	id := env.createPost(t, env.token(t, "alice"), "just one")

	w, body := env.do(t, http.MethodGet, "/posts/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.assertRenewed(t, body, "alice", issued)

	post := body["post"].(map[string]any)
	assert.Equal(t, id, post["id"])
	assert.Equal(t, "just one", post["message"])
	assert.Equal(t, []any{}, post["likes"])

	w, body = env.do(t, http.MethodGet, "/posts/missing", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, body, "token")
}
