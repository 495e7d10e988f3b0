package command

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bthinkxdev/sulthan-perfume/session"
)

func stagePreCart(t *testing.T, dir string, items ...session.PreCartItem) {
	t.Helper()
	fs, err := session.NewFileStore(dir)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	pc := session.NewPreCart(fs)
	for _, item := range items {
		if err := pc.Add(item); err != nil {
			t.Fatalf("staging: %v", err)
		}
	}
}

func TestMergeCommand_PushesStagedLines(t *testing.T) {
	isolateEnv(t)
	store := t.TempDir()
	stagePreCart(t, store,
		session.PreCartItem{ItemType: session.ItemTypeProduct, ProductID: testProductID, Quantity: 2},
	)

	var payload struct {
		SessionCart []session.PreCartItem `json:"session_cart"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cart/merge/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "cart_count": 2}`))
	}))
	t.Cleanup(srv.Close)

	out, err := runCommand(t, "merge", "--base", srv.URL, "--store", store)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	if len(payload.SessionCart) != 1 || payload.SessionCart[0].ProductID != testProductID {
		t.Fatalf("session_cart = %+v", payload.SessionCart)
	}
	if !strings.Contains(out, "merged 1 line(s); cart has 2 item(s)") {
		t.Fatalf("output = %q", out)
	}

	// The staged lines are gone once the server owns them.
	fs, _ := session.NewFileStore(store)
	items, err := session.NewPreCart(fs).Items()
	if err != nil {
		t.Fatalf("reading pre-cart: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("pre-cart still has %d line(s)", len(items))
	}
}

func TestMergeCommand_NothingStaged(t *testing.T) {
	isolateEnv(t)
	var requests atomic.Int64
	srv := countServer(t, &requests, 0)

	out, err := runCommand(t, "merge", "--base", srv.URL, "--store", t.TempDir())
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	if got := requests.Load(); got != 0 {
		t.Fatalf("requests = %d, want 0", got)
	}
	if !strings.Contains(out, "nothing staged; cart unchanged") {
		t.Fatalf("output = %q", out)
	}
}

func TestMergeCommand_ServerFailureKeepsStage(t *testing.T) {
	isolateEnv(t)
	store := t.TempDir()
	stagePreCart(t, store,
		session.PreCartItem{ItemType: session.ItemTypeCombo, ComboID: "gift-set-1", Quantity: 1},
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "error": "merge failed"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := runCommand(t, "merge", "--base", srv.URL, "--store", store)
	if err == nil || !strings.Contains(err.Error(), "merge failed") {
		t.Fatalf("error = %v", err)
	}

	fs, _ := session.NewFileStore(store)
	items, _ := session.NewPreCart(fs).Items()
	if len(items) != 1 {
		t.Fatalf("pre-cart lines = %d, want 1 kept", len(items))
	}
}
