package http_test

import (
	"encoding/json"
	"io"
	"listo/config"
	"listo/helper"
	"listo/infras/database"
	"listo/infras/otel/mocks"
	itemRepository "listo/internal/domains/item/repository"
	itemService "listo/internal/domains/item/service"
	listDto "listo/internal/domains/list/model/dto"
	listRepository "listo/internal/domains/list/repository"
	listService "listo/internal/domains/list/service"
	"listo/internal/handlers/item"
	"listo/internal/handlers/list"
	"listo/internal/handlers/shell"
	"listo/shared/cache"
	"listo/shared/constant"
	"listo/transport/http/middleware"
	"listo/transport/http/router"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transport "listo/transport/http"
)

const shellBody = "<html>listo</html>"

type testServer struct {
	t    *testing.T
	http *transport.HTTP
	db   *database.Connection
	otel *mocks.Recorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conn, err := helper.NewMemoryConnection()
	require.NoError(t, err)

	t.Cleanup(func() { _ = conn.Close() })

	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.Cache.TTL = 60

	ot := mocks.NewOtel()
	redisCache := cache.NewRedisCache(nil, ot)

	listRepo := listRepository.New(conn, ot)
	itemRepo := itemRepository.New(conn, ot)

	handlers := router.DomainHandlers{
		List:  list.New(listService.New(listRepo, itemRepo, cfg, redisCache, ot), ot),
		Item:  item.New(itemService.New(itemRepo, listRepo, cfg, redisCache, ot), ot),
		Shell: shell.New(fstest.MapFS{"index.html": {Data: []byte(shellBody)}}),
	}

	r := router.New(handlers, middleware.NewAppMiddleware(ot, cfg, redisCache), cfg)

	return &testServer{
		t:    t,
		http: transport.New(cfg, r, conn, ot),
		db:   conn,
		otel: ot,
	}
}

func (s *testServer) do(method, path, body string) (int, string) {
	s.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.http.ServeHTTP(rec, req)

	res, err := io.ReadAll(rec.Body)
	require.NoError(s.t, err)

	return rec.Code, string(res)
}

func (s *testServer) createList(name string) string {
	s.t.Helper()

	code, slug := s.do(http.MethodPost, "/api/lists", name)
	require.Equal(s.t, http.StatusOK, code, slug)

	return slug
}

func (s *testServer) createItem(body string) string {
	s.t.Helper()

	code, id := s.do(http.MethodPost, "/api/items", body)
	require.Equal(s.t, http.StatusOK, code, id)

	return id
}

func (s *testServer) all() listDto.AllResponse {
	s.t.Helper()

	code, body := s.do(http.MethodGet, "/api/all", "")
	require.Equal(s.t, http.StatusOK, code, body)

	res := listDto.AllResponse{}
	require.NoError(s.t, json.Unmarshal([]byte(body), &res))

	return res
}

func TestGroceries(t *testing.T) {
	s := newTestServer(t)

	slug := s.createList("Groceries")
	assert.Equal(t, "groceries", slug)

	all := s.all()
	require.Contains(t, all, "groceries")
	assert.Equal(t, "Groceries", all["groceries"].Name)
	assert.NotNil(t, all["groceries"].Items)
	assert.Empty(t, all["groceries"].Items)

	id := s.createItem(`{"list":"groceries","text":"Milk","created_at":1700000000000}`)
	assert.Equal(t, "1", id)

	items := s.all()["groceries"].Items
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "groceries", items[0].List)
	assert.Equal(t, "Milk", items[0].Text)
	assert.False(t, items[0].IsCompleted)
	assert.Equal(t, int64(1700000000000), items[0].CreatedAt)

	code, _ := s.do(http.MethodPatch, "/api/items/1", `{"is_completed":true}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, s.all()["groceries"].Items[0].IsCompleted)

	code, _ = s.do(http.MethodPatch, "/api/items/1", `{"is_completed":false}`)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, s.all()["groceries"].Items[0].IsCompleted)

	code, _ = s.do(http.MethodDelete, "/api/lists/groceries", "")
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, s.all(), "groceries")

	var orphans int
	require.NoError(t, s.db.Read.Get(&orphans, "SELECT COUNT(*) FROM items"))
	assert.Zero(t, orphans)
}

func TestCreateItemValidation(t *testing.T) {
	s := newTestServer(t)
	s.createList("Groceries")

	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{
			name:    "missing created_at",
			body:    `{"list":"groceries","text":"Milk"}`,
			code:    http.StatusBadRequest,
			message: "created_at",
		},
		{
			name:    "created_at is not a number",
			body:    `{"list":"groceries","text":"Milk","created_at":"yesterday"}`,
			code:    http.StatusBadRequest,
			message: "created_at",
		},
		{
			name: "fractional created_at is accepted",
			body: `{"list":"groceries","text":"Bread","created_at":1000.5}`,
			code: http.StatusOK,
		},
		{
			name:    "text is not a string",
			body:    `{"list":"groceries","text":5,"created_at":1}`,
			code:    http.StatusBadRequest,
			message: "text",
		},
		{
			name:    "unknown list",
			body:    `{"list":"chores","text":"Sweep","created_at":1}`,
			code:    http.StatusBadRequest,
			message: "list does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(http.MethodPost, "/api/items", tt.body)

			assert.Equal(t, tt.code, code)
			assert.Contains(t, body, tt.message)
		})
	}

	items := s.all()["groceries"].Items
	require.Len(t, items, 1)
	assert.Equal(t, int64(1000), items[0].CreatedAt)
}

func TestUpdateItem(t *testing.T) {
	s := newTestServer(t)
	s.createList("Groceries")
	s.createList("Chores")
	s.createItem(`{"list":"groceries","text":"Milk","created_at":1}`)

	t.Run("unknown field is a no-op", func(t *testing.T) {
		code, _ := s.do(http.MethodPatch, "/api/items/1", `{"color":"red","is_completed":"yes"}`)
		require.Equal(t, http.StatusOK, code)

		items := s.all()["groceries"].Items
		require.Len(t, items, 1)
		assert.Equal(t, "Milk", items[0].Text)
		assert.False(t, items[0].IsCompleted)
	})

	t.Run("edit text", func(t *testing.T) {
		code, _ := s.do(http.MethodPatch, "/api/items/1", `{"text":"Oat milk"}`)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Oat milk", s.all()["groceries"].Items[0].Text)
	})

	t.Run("move to unknown list", func(t *testing.T) {
		code, body := s.do(http.MethodPatch, "/api/items/1", `{"list":"garden"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, body, "list does not exist")
		assert.Len(t, s.all()["groceries"].Items, 1)
	})

	t.Run("move", func(t *testing.T) {
		code, _ := s.do(http.MethodPatch, "/api/items/1", `{"list":"chores"}`)
		require.Equal(t, http.StatusOK, code)

		all := s.all()
		assert.Empty(t, all["groceries"].Items)
		require.Len(t, all["chores"].Items, 1)
		assert.Equal(t, "chores", all["chores"].Items[0].List)
	})

	t.Run("missing item", func(t *testing.T) {
		code, body := s.do(http.MethodPatch, "/api/items/42", `{"text":"x"}`)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Contains(t, body, "item not found")
	})

	t.Run("invalid id", func(t *testing.T) {
		code, _ := s.do(http.MethodPatch, "/api/items/abc", `{"text":"x"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("delete twice", func(t *testing.T) {
		code, _ := s.do(http.MethodDelete, "/api/items/1", "")
		assert.Equal(t, http.StatusOK, code)

		code, _ = s.do(http.MethodDelete, "/api/items/1", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Empty(t, s.all()["chores"].Items)
	})
}

func TestLists(t *testing.T) {
	s := newTestServer(t)

	first := s.createList("Groceries")
	second := s.createList("Groceries")

	assert.Equal(t, "groceries", first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "groceries-"), second)

	code, _ := s.do(http.MethodPost, "/api/lists", "   ")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPatch, "/api/lists/groceries", "Food")
	require.Equal(t, http.StatusOK, code)

	all := s.all()
	assert.Len(t, all, 2)
	assert.Equal(t, "Food", all["groceries"].Name)
	assert.Equal(t, "groceries", all["groceries"].Slug)

	code, _ = s.do(http.MethodPatch, "/api/lists/groceries", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPatch, "/api/lists/nowhere", "Food")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodDelete, "/api/lists/nowhere", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestTracing(t *testing.T) {
	s := newTestServer(t)
	s.createList("Groceries")
	s.createItem(`{"list":"groceries","text":"Milk","created_at":1}`)

	code, _ := s.do(http.MethodPatch, "/api/items/1", `{"is_completed":true}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodDelete, "/api/lists/groceries", "")
	require.Equal(t, http.StatusOK, code)

	assert.Contains(t, s.otel.Values(constant.OtelItemIDAttributeKey), any(int64(1)))
	assert.Contains(t, s.otel.Values(constant.OtelListSlugAttributeKey), any("groceries"))
	assert.Contains(t, s.otel.Scopes(), "handler.UpdateItem")
	assert.Contains(t, s.otel.Scopes(), "service.list.Delete")
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"route not found"}`, body)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/items/1"},
		{http.MethodGet, "/api/items/1"},
		{http.MethodPost, "/api/all"},
		{http.MethodPut, "/api/lists/groceries"},
	} {
		code, body = s.do(tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, code, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"error":"route not found"}`, body, tc.method+" "+tc.path)
	}

	code, body = s.do(http.MethodGet, "/list/groceries", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, shellBody, body)

	code, body = s.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, shellBody, body)

	code, body = s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"data":{"status":"ok","driver":"sqlite"}}`, body)
	assert.Equal(t, transport.ServerStateReady, s.http.State())
}
