package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shopCatalog = []model.Product{
	{ID: "P1", Name: "Radio", Price: 45, Category: "Electronics", Image: "radio.png"},
	{ID: "P2", Name: "Shirt", Price: 20, Category: "Clothing", Image: "shirt.png"},
}

// newFakeAPI serves a small storefront API. The only valid login is
// ada@example.com / secret, which yields token "tok".
func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
	unauthorized := func(w http.ResponseWriter, msg string) {
		writeJSON(w, http.StatusUnauthorized, model.ErrorResponse{Error: "UNAUTHORIZED", Message: msg})
	}

	serverCart := model.Cart{}

	mux := http.NewServeMux()
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		items := []model.Product{}
		for _, p := range shopCatalog {
			if category == "" || p.Category == category {
				items = append(items, p)
			}
		}
		writeJSON(w, http.StatusOK, items)
	})
	mux.HandleFunc("/items/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []string{"Clothing", "Electronics"})
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds model.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Email != "ada@example.com" || creds.Password != "secret" {
			unauthorized(w, "Invalid email or password")
			return
		}
		writeJSON(w, http.StatusOK, model.AuthResponse{
			Token: "tok",
			User:  model.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		})
	})
	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			unauthorized(w, "Authentication required")
			return
		}
		var req model.AddToCartRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		for _, p := range shopCatalog {
			if p.ID != req.ItemID {
				continue
			}
			if i := serverCart.Find(p.ID); i >= 0 {
				serverCart[i].Quantity += req.Quantity
			} else {
				serverCart = append(serverCart, model.NewCartLine(p, req.Quantity))
			}
		}
		writeJSON(w, http.StatusOK, model.CartResponse{Cart: serverCart})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

type shopEnv struct {
	apiURL    string
	storePath string
}

func newShopEnv(t *testing.T) shopEnv {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")

	return shopEnv{
		apiURL:    newFakeAPI(t).URL,
		storePath: filepath.Join(t.TempDir(), "state.json"),
	}
}

func (e shopEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{
		"--api-url", e.apiURL,
		"--store-driver", "file",
		"--store-path", e.storePath,
	}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e shopEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err)
	return out
}

func TestShop_Items(t *testing.T) {
	env := newShopEnv(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "all items",
			args:     []string{"items"},
			contains: []string{"P1", "Radio", "45.00", "P2", "Shirt", "20.00"},
		},
		{
			name:     "by category",
			args:     []string{"items", "--category", "Clothing"},
			contains: []string{"Shirt"},
			excludes: []string{"Radio"},
		},
		{
			name:     "no matches",
			args:     []string{"items", "--category", "Garden"},
			contains: []string{"No items found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := env.mustRun(t, tt.args...)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestShop_Categories(t *testing.T) {
	env := newShopEnv(t)

	out := env.mustRun(t, "categories")

	assert.Equal(t, "Clothing\nElectronics\n", out)
}

func TestShop_AnonymousCartPersists(t *testing.T) {
	env := newShopEnv(t)

	out := env.mustRun(t, "add", "P1", "--qty", "2")
	assert.Contains(t, out, "Radio added to cart locally. Log in to save your cart.")
	assert.Contains(t, out, "Cart (1)")

	out = env.mustRun(t, "cart")
	assert.Contains(t, out, "Radio")
	assert.Contains(t, out, "90.00")
	assert.Contains(t, out, "Total: 90.00")
}

func TestShop_EmptyCart(t *testing.T) {
	env := newShopEnv(t)

	out := env.mustRun(t, "cart")

	assert.Contains(t, out, "Cart is empty")
}

func TestShop_Remove(t *testing.T) {
	env := newShopEnv(t)

	env.mustRun(t, "add", "P1")
	env.mustRun(t, "add", "P2")

	out := env.mustRun(t, "remove", "P1")
	assert.Contains(t, out, "Cart (1)")

	out = env.mustRun(t, "cart")
	assert.NotContains(t, out, "Radio")
	assert.Contains(t, out, "Total: 20.00")
}

func TestShop_AddUnknownItem(t *testing.T) {
	env := newShopEnv(t)

	_, err := env.run(t, "add", "nope")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `item "nope" not found`)
}

func TestShop_SessionLifecycle(t *testing.T) {
	env := newShopEnv(t)

	out := env.mustRun(t, "login", "ada@example.com", "secret")
	assert.Contains(t, out, "Logged in as Ada <ada@example.com>")

	out = env.mustRun(t, "whoami")
	assert.Contains(t, out, "Logged in as Ada <ada@example.com>")

	out = env.mustRun(t, "add", "P1", "--qty", "3")
	assert.Contains(t, out, "Radio added to cart\n")

	out = env.mustRun(t, "cart")
	assert.Contains(t, out, "Total: 135.00")

	out = env.mustRun(t, "logout")
	assert.Contains(t, out, "Logged out")

	out = env.mustRun(t, "whoami")
	assert.Contains(t, out, "Not logged in")

	// The cart outlives the session.
	out = env.mustRun(t, "cart")
	assert.Contains(t, out, "Total: 135.00")
}

func TestShop_LoginFailure(t *testing.T) {
	env := newShopEnv(t)

	_, err := env.run(t, "login", "ada@example.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())

	out := env.mustRun(t, "whoami")
	assert.Contains(t, out, "Not logged in")
}

func TestShop_InvalidConfiguration(t *testing.T) {
	env := newShopEnv(t)

	_, err := env.run(t, "--store-driver", "bogus", "cart")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store driver")
}

func TestDescribeUser(t *testing.T) {
	tests := []struct {
		user model.User
		want string
	}{
		{model.User{Name: "Ada", Email: "ada@example.com"}, "Ada <ada@example.com>"},
		{model.User{Email: "ada@example.com"}, "ada@example.com"},
		{model.User{Name: "Ada"}, "Ada"},
		{model.User{}, "unknown user"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describeUser(tt.user))
	}
}
