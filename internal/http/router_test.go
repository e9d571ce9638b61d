package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/mkadlec/product-audit-api/internal/http/manager"
	"github.com/mkadlec/product-audit-api/internal/repo"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter() (http.Handler, *repo.InMemoryProductRepository, *repo.InMemoryHistoryRepository) {
	history := repo.NewInMemoryHistoryRepository()
	products := repo.NewInMemoryProductRepository(history)
	return NewRouter(products, history), products, history
}

func doRequest(t *testing.T, r http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode envelope %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode data %q: %v", string(env.Data), err)
	}
}

func TestProductLifecycle(t *testing.T) {
	r, products, history := newTestRouter()

	// create
	w, env := doRequest(t, r, http.MethodPost, "/product",
		map[string]any{"name": "Widget", "price": 9.99, "stock": 10})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.Status != manager.StatusOK {
		t.Fatalf("expected ok status, got %q", env.Status)
	}

	var created manager.ProductResponse
	decodeData(t, env, &created)
	if created.ID == 0 {
		t.Error("expected assigned id")
	}
	if created.Deleted {
		t.Error("new product must not be deleted")
	}
	if created.Name != "Widget" || created.Price != 9.99 || created.Stock != 10 {
		t.Errorf("unexpected created product: %+v", created)
	}

	// fetch it back
	_, env = doRequest(t, r, http.MethodGet, fmt.Sprintf("/product?id=%d", created.ID), nil)
	var fetched manager.ProductResponse
	decodeData(t, env, &fetched)
	if !reflect.DeepEqual(fetched, created) {
		t.Errorf("GET returned different values:\n got %+v\nwant %+v", fetched, created)
	}

	// partial update
	w, env = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/product?id=%d", created.ID),
		map[string]any{"stock": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("patch failed with %d: %s", w.Code, w.Body.String())
	}
	var patched manager.ProductResponse
	decodeData(t, env, &patched)
	if patched.Stock != 5 || patched.Name != "Widget" || patched.Price != 9.99 {
		t.Errorf("patch must only override given fields: %+v", patched)
	}

	records, err := history.GetByProductID(created.ID, 50, 0)
	if err != nil {
		t.Fatalf("history fetch failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 history records after patch, got %d", len(records))
	}
	if records[1].Stock != 5 || records[1].Name != "Widget" {
		t.Errorf("second snapshot must hold post-patch state: %+v", records[1])
	}

	// soft delete
	w, env = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/product?id=%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed with %d: %s", w.Code, w.Body.String())
	}
	var deleted manager.DeleteResult
	decodeData(t, env, &deleted)
	if deleted.ID != created.ID || deleted.AffectedRows != 1 {
		t.Errorf("unexpected delete result: %+v", deleted)
	}

	// still retrievable by id, but gone from the default existence check
	w, env = doRequest(t, r, http.MethodGet, fmt.Sprintf("/product?id=%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Errorf("soft-deleted product must stay fetchable, got %d", w.Code)
	}
	var afterDelete manager.ProductResponse
	decodeData(t, env, &afterDelete)
	if !afterDelete.Deleted {
		t.Error("expected deleted flag in response")
	}
	if exists, _ := products.Exists(created.ID, false); exists {
		t.Error("default existence check must now report false")
	}
}

func TestProductGetErrors(t *testing.T) {
	r, _, _ := newTestRouter()

	w, env := doRequest(t, r, http.MethodGet, "/product", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing id must be 400, got %d", w.Code)
	}
	if env.Error == nil || !strings.Contains(env.Error.Message, "'id'") {
		t.Errorf("error must name the missing parameter: %+v", env.Error)
	}

	w, env = doRequest(t, r, http.MethodGet, "/product?id=999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id must be 404, got %d", w.Code)
	}
	if env.Status != manager.StatusError || env.Error == nil || env.Error.Code != http.StatusNotFound {
		t.Errorf("envelope must carry the error code: %+v", env)
	}

	w, _ = doRequest(t, r, http.MethodGet, "/product?id=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-integer id must be 400, got %d", w.Code)
	}
}

func TestProductCreateErrors(t *testing.T) {
	r, _, _ := newTestRouter()

	tests := []struct {
		name    string
		body    any
		rawBody string
	}{
		{name: "empty body", rawBody: ""},
		{name: "empty object", body: map[string]any{}},
		{name: "malformed json", rawBody: `{"name": "Widget" "price": 1}`},
		{name: "missing name", body: map[string]any{"price": 1.0}},
		{name: "negative price", body: map[string]any{"name": "Widget", "price": -1.0}},
		{name: "fractional stock", body: map[string]any{"name": "Widget", "stock": 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if tt.body != nil {
				w, _ = doRequest(t, r, http.MethodPost, "/product", tt.body)
			} else {
				req := httptest.NewRequest(http.MethodPost, "/product", strings.NewReader(tt.rawBody))
				w = httptest.NewRecorder()
				r.ServeHTTP(w, req)
			}
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestPutUpsert(t *testing.T) {
	r, products, _ := newTestRouter()

	// no id: behaves like POST
	w, env := doRequest(t, r, http.MethodPut, "/product",
		map[string]any{"name": "Widget", "price": 5.0})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT without id must create, got %d: %s", w.Code, w.Body.String())
	}
	var created manager.ProductResponse
	decodeData(t, env, &created)

	// unknown id: also creates
	w, _ = doRequest(t, r, http.MethodPut, "/product?id=999",
		map[string]any{"name": "Other", "price": 7.0})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT with unknown id must create, got %d: %s", w.Code, w.Body.String())
	}

	// existing id: behaves like PATCH
	w, env = doRequest(t, r, http.MethodPut, fmt.Sprintf("/product?id=%d", created.ID),
		map[string]any{"price": 6.5})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT with existing id must patch, got %d: %s", w.Code, w.Body.String())
	}
	var updated manager.ProductResponse
	decodeData(t, env, &updated)
	if updated.ID != created.ID || updated.Price != 6.5 || updated.Name != "Widget" {
		t.Errorf("unexpected upsert result: %+v", updated)
	}

	if count, _ := products.GetCount(repo.ProductFilter{}); count != 2 {
		t.Errorf("expected 2 products after upserts, got %d", count)
	}
}

func TestProductListFilters(t *testing.T) {
	r, _, _ := newTestRouter()
	seed := []struct {
		name  string
		price float64
	}{{"Cheap", 5}, {"Medium", 15}, {"Expensive", 25}}
	for _, s := range seed {
		doRequest(t, r, http.MethodPost, "/product", map[string]any{"name": s.name, "price": s.price})
	}

	_, env := doRequest(t, r, http.MethodGet, "/products?minPrice=10&maxPrice=20", nil)
	var list []manager.ProductResponse
	decodeData(t, env, &list)
	if len(list) != 1 || list[0].Price != 15 {
		t.Errorf("expected only the price-15 product, got %+v", list)
	}
}

func TestProductListErrors(t *testing.T) {
	r, _, _ := newTestRouter()

	// empty table is an error, not an empty success
	w, env := doRequest(t, r, http.MethodGet, "/products", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("empty list must be 404, got %d", w.Code)
	}
	if env.Status != manager.StatusError {
		t.Errorf("expected error status, got %q", env.Status)
	}

	doRequest(t, r, http.MethodPost, "/product", map[string]any{"name": "Widget"})

	for _, target := range []string{
		"/products?limit=0",
		"/products?limit=101",
		"/products?offset=-1",
		"/products?minPrice=abc",
	} {
		w, _ := doRequest(t, r, http.MethodGet, target, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
	}
}

func TestHistoryEndpoint(t *testing.T) {
	r, _, _ := newTestRouter()

	_, env := doRequest(t, r, http.MethodPost, "/product",
		map[string]any{"name": "Widget", "price": 10.0})
	var created manager.ProductResponse
	decodeData(t, env, &created)

	doRequest(t, r, http.MethodPatch, fmt.Sprintf("/product?id=%d", created.ID),
		map[string]any{"price": 12.5})

	_, env = doRequest(t, r, http.MethodGet, fmt.Sprintf("/product/history?id=%d", created.ID), nil)
	var records []manager.HistoryResponse
	decodeData(t, env, &records)
	if len(records) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(records))
	}
	if records[0].Price != 10.0 || records[1].Price != 12.5 {
		t.Errorf("records must be chronological: %+v", records)
	}

	// missing id
	w, _ := doRequest(t, r, http.MethodGet, "/product/history", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing id must be 400, got %d", w.Code)
	}

	// no history at all vs offset past the end
	w, _ = doRequest(t, r, http.MethodGet, "/product/history?id=999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("no history must be 404, got %d", w.Code)
	}
	w, _ = doRequest(t, r, http.MethodGet, fmt.Sprintf("/product/history?id=%d&offset=50", created.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("offset past the end must be 400, got %d", w.Code)
	}
}

func TestHistoryPriceTrail(t *testing.T) {
	r, _, _ := newTestRouter()

	_, env := doRequest(t, r, http.MethodPost, "/product",
		map[string]any{"name": "Widget", "price": 10.0})
	var created manager.ProductResponse
	decodeData(t, env, &created)

	// same price, then a change
	doRequest(t, r, http.MethodPatch, fmt.Sprintf("/product?id=%d", created.ID),
		map[string]any{"stock": 1})
	doRequest(t, r, http.MethodPatch, fmt.Sprintf("/product?id=%d", created.ID),
		map[string]any{"price": 12.5})

	_, env = doRequest(t, r, http.MethodGet, fmt.Sprintf("/product/history/price?id=%d", created.ID), nil)
	var trail []manager.PriceHistoryResponse
	decodeData(t, env, &trail)
	if len(trail) != 3 {
		t.Fatalf("expected 3 trail records, got %d", len(trail))
	}

	first := trail[0]
	if first.PriceOld != nil || first.PriceChanged {
		t.Errorf("first record must have no previous price: %+v", first)
	}

	second := trail[1]
	if second.PriceChanged {
		t.Errorf("equal consecutive prices must not flag a change: %+v", second)
	}
	if second.PriceOld == nil || *second.PriceOld != 10.0 {
		t.Errorf("second record must carry the previous price: %+v", second)
	}

	third := trail[2]
	if !third.PriceChanged || third.Price != 12.5 {
		t.Errorf("price change must be flagged: %+v", third)
	}
	if third.PriceOld == nil || *third.PriceOld != 10.0 {
		t.Errorf("third record must carry the previous price: %+v", third)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r, _, _ := newTestRouter()

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/products"},
		{http.MethodDelete, "/products"},
		{http.MethodPost, "/product/history"},
		{http.MethodPut, "/product/history/price"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w, env := doRequest(t, r, tt.method, tt.target, nil)
			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d", w.Code)
			}
			if env.Error == nil || !strings.Contains(env.Error.Message, tt.method) {
				t.Errorf("error must name the rejected method: %+v", env.Error)
			}
		})
	}
}

func TestHeadAndOptions(t *testing.T) {
	r, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodHead, "/product", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("HEAD must succeed trivially, got %d", w.Code)
	}

	w2, env := doRequest(t, r, http.MethodOptions, "/product", nil)
	if w2.Code != http.StatusOK {
		t.Errorf("OPTIONS must succeed, got %d", w2.Code)
	}
	var info map[string]string
	decodeData(t, env, &info)
	for _, method := range []string{"GET", "POST", "PATCH", "PUT", "DELETE"} {
		if !strings.Contains(info["message"], method) {
			t.Errorf("OPTIONS message must list %s, got %q", method, info["message"])
		}
	}
}
