package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kdalam/furnidex/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Get("/products", "catalog.list", ok)
	r.Get("/products/{code}", "catalog.show", ok)

	url, err := r.URL("catalog.show", map[string]string{"code": "A1"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/products/A1" {
		t.Errorf("got %q", url)
	}

	if _, err := r.URL("catalog.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	r := router.New()

	gateHits := 0
	gate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			gateHits++
			next.ServeHTTP(w, req)
		})
	}

	admin := r.Group("", gate)
	admin.Post("/reset", "catalog.reset", ok)
	r.Get("/search", "search.page", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	if _, err := http.Post(srv.URL+"/reset", "", nil); err != nil {
		t.Fatal(err)
	}
	if gateHits != 1 {
		t.Errorf("expected 1 gate hit, got %d", gateHits)
	}

	if _, err := http.Get(srv.URL + "/search"); err != nil {
		t.Fatal(err)
	}
	if gateHits != 1 {
		t.Errorf("group middleware leaked to ungrouped route, hits=%d", gateHits)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/search", "search.page", ok)
	r.Post("/api/search", "search.api", ok)
	r.HandleFunc("/metrics", ok) // unnamed, not listed

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 named routes, got %d", len(infos))
	}
}
