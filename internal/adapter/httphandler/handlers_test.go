package httphandler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/order-fulfillment/internal/adapter/httphandler"
	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductsStorage is a map-backed catalog store for handler tests.
type fakeProductsStorage struct {
	byID map[string]domain.Product
	seq  int
}

func newFakeProductsStorage() *fakeProductsStorage {
	return &fakeProductsStorage{byID: make(map[string]domain.Product)}
}

func (f *fakeProductsStorage) Products(
	context.Context,
) ([]domain.Product, error) {
	ps := make([]domain.Product, 0, len(f.byID))
	for _, p := range f.byID {
		ps = append(ps, p)
	}
	return ps, nil
}

func (f *fakeProductsStorage) Product(
	_ context.Context, id string,
) (domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductsStorage) ProductsByIDs(
	_ context.Context, ids []string,
) ([]domain.Product, error) {
	var ps []domain.Product
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (f *fakeProductsStorage) StoreProduct(
	_ context.Context, p domain.Product,
) (domain.Product, error) {
	f.seq++
	p.ID = fmt.Sprintf("id%d", f.seq)
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProductsStorage) ReplaceProduct(
	_ context.Context, id string, p domain.Product,
) (domain.Product, error) {
	if _, ok := f.byID[id]; !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	p.ID = id
	f.byID[id] = p
	return p, nil
}

func (f *fakeProductsStorage) RemoveProduct(
	_ context.Context, id string,
) (domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	delete(f.byID, id)
	return p, nil
}

// fakeOrdersStorage is a map-backed order store keyed by
// customer email + order id.
type fakeOrdersStorage struct {
	m   map[string]domain.Order
	seq int
}

func newFakeOrdersStorage() *fakeOrdersStorage {
	return &fakeOrdersStorage{m: make(map[string]domain.Order)}
}

func orderKey(email, orderID string) string {
	return email + "/" + orderID
}

func (f *fakeOrdersStorage) StoreOrder(
	_ context.Context, order domain.Order,
) (domain.Order, error) {
	f.seq++
	order.OrderID = fmt.Sprintf("order%d", f.seq)
	order.CreatedAt = int64(1700000000000 + f.seq)
	f.m[orderKey(order.CustomerEmail, order.OrderID)] = order
	return order, nil
}

func (f *fakeOrdersStorage) Order(
	_ context.Context, email, orderID string,
) (domain.Order, error) {
	order, ok := f.m[orderKey(email, orderID)]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrdersStorage) OrdersByCustomer(
	_ context.Context, email string,
) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range f.m {
		if order.CustomerEmail == email {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrdersStorage) Orders(
	context.Context,
) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range f.m {
		orders = append(orders, order)
	}
	return orders, nil
}

func (f *fakeOrdersStorage) RemoveOrder(
	_ context.Context, email, orderID string,
) (domain.Order, error) {
	key := orderKey(email, orderID)
	order, ok := f.m[key]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	delete(f.m, key)
	return order, nil
}

type captureNotifier struct {
	events []domain.ProductEvent
}

func (n *captureNotifier) Notify(e domain.ProductEvent) {
	n.events = append(n.events, e)
}

type fakeEventLog struct {
	recs []domain.EventRecord
}

func (f *fakeEventLog) ProductEvents(
	_ context.Context, productCode string,
) ([]domain.EventRecord, error) {
	var recs []domain.EventRecord
	for _, rec := range f.recs {
		if rec.PK == domain.EventPartitionKey(productCode) {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

type testEnv struct {
	mux      *http.ServeMux
	products *fakeProductsStorage
	orders   *fakeOrdersStorage
	eventLog *fakeEventLog
	notifier *captureNotifier
}

func setup(t *testing.T) testEnv {
	t.Helper()

	products := newFakeProductsStorage()
	orders := newFakeOrdersStorage()
	eventLog := &fakeEventLog{}
	notifier := &captureNotifier{}

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, service.NewCatalog(products, notifier))
	httphandler.RegisterOrders(mux, service.NewOrders(orders, products))
	httphandler.RegisterEvents(mux, eventLog)
	httphandler.RegisterFallback(mux)

	return testEnv{mux, products, orders, eventLog, notifier}
}

func (env testEnv) do(
	t *testing.T, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, r)
	return w
}

func TestProductsAPI(t *testing.T) {
	t.Run("CreateAssignsID", func(t *testing.T) {
		env := setup(t)

		w := env.do(t, http.MethodPost, "/products",
			`{"productName":"Notebook","code":"C1","price":10.5}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var p struct {
			ID    string  `json:"id"`
			Name  string  `json:"productName"`
			Price float64 `json:"price"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Notebook", p.Name)
		assert.InDelta(t, 10.5, p.Price, 0)

		require.Len(t, env.notifier.events, 1)
		assert.Equal(t, domain.EventCreated, env.notifier.events[0].Type)
	})

	t.Run("CreateRequiresNameAndCode", func(t *testing.T) {
		env := setup(t)

		w := env.do(t, http.MethodPost, "/products", `{"price":10}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetMissing", func(t *testing.T) {
		env := setup(t)

		w := env.do(t, http.MethodGet, "/products/absent", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Product not found", strings.TrimSpace(w.Body.String()))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		env := setup(t)

		w := env.do(t, http.MethodPut, "/products/absent",
			`{"productName":"Notebook","code":"C1"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, env.notifier.events)
	})

	t.Run("UpdateReplacesFields", func(t *testing.T) {
		env := setup(t)
		env.products.byID["id1"] = domain.Product{
			ID: "id1", Name: "Notebook", Code: "C1", Price: 10,
		}

		w := env.do(t, http.MethodPut, "/products/id1",
			`{"productName":"Notebook v2","code":"C1","price":15}`)
		require.Equal(t, http.StatusOK, w.Code)

		updated := env.products.byID["id1"]
		assert.Equal(t, "Notebook v2", updated.Name)
		assert.InDelta(t, 15, updated.Price, 0)
	})

	t.Run("DeleteReturnsPriorValue", func(t *testing.T) {
		env := setup(t)
		env.products.byID["id1"] = domain.Product{
			ID: "id1", Name: "Notebook", Code: "C1", Price: 10,
		}

		w := env.do(t, http.MethodDelete, "/products/id1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var p struct {
			ID   string `json:"id"`
			Name string `json:"productName"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "id1", p.ID)
		assert.Equal(t, "Notebook", p.Name)
		assert.Empty(t, env.products.byID)

		require.Len(t, env.notifier.events, 1)
		assert.Equal(t, domain.EventDeleted, env.notifier.events[0].Type)
	})
}

func TestOrdersAPI(t *testing.T) {
	seedCatalog := func(env testEnv) {
		env.products.byID["id1"] = domain.Product{
			ID: "id1", Name: "Notebook", Code: "C1", Price: 10,
		}
		env.products.byID["id2"] = domain.Product{
			ID: "id2", Name: "Mouse", Code: "C2", Price: 25,
		}
	}

	t.Run("CreateOrder", func(t *testing.T) {
		env := setup(t)
		seedCatalog(env)

		w := env.do(t, http.MethodPost, "/orders", `{
			"email": "a@b.com",
			"productIds": ["id1", "id2"],
			"payment": "CASH",
			"shipping": {"type": "ECONOMIC", "carrier": "CORREIOS"}
		}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Email   string `json:"email"`
			ID      string `json:"id"`
			Billing struct {
				Payment    string  `json:"payment"`
				TotalPrice float64 `json:"totalPrice"`
			} `json:"billing"`
			Products []struct {
				Code string `json:"code"`
			} `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "a@b.com", resp.Email)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "CASH", resp.Billing.Payment)
		assert.InDelta(t, 35, resp.Billing.TotalPrice, 0)
		require.Len(t, resp.Products, 2)
	})

	t.Run("CreateOrderMissingProduct", func(t *testing.T) {
		env := setup(t)
		seedCatalog(env)

		w := env.do(t, http.MethodPost, "/orders", `{
			"email": "a@b.com",
			"productIds": ["id1", "MISSING"],
			"payment": "CASH",
			"shipping": {"type": "ECONOMIC", "carrier": "CORREIOS"}
		}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t,
			"Some product was not found",
			strings.TrimSpace(w.Body.String()),
		)
		assert.Empty(t, env.orders.m)
	})

	t.Run("GetOrderByEmailAndID", func(t *testing.T) {
		env := setup(t)
		seedCatalog(env)

		created := env.do(t, http.MethodPost, "/orders", `{
			"email": "a@b.com",
			"productIds": ["id1"],
			"payment": "DEBIT_CARD",
			"shipping": {"type": "URGENT", "carrier": "FEDEX"}
		}`)
		require.Equal(t, http.StatusCreated, created.Code)

		var resp struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

		w := env.do(t, http.MethodGet,
			"/orders?email=a@b.com&orderId="+resp.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, "/orders?email=a@b.com&orderId=zzz", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Order not found", strings.TrimSpace(w.Body.String()))
	})

	t.Run("ListOrders", func(t *testing.T) {
		env := setup(t)
		env.orders.m[orderKey("a@b.com", "order1")] = domain.Order{
			CustomerEmail: "a@b.com", OrderID: "order1",
		}
		env.orders.m[orderKey("c@d.com", "order2")] = domain.Order{
			CustomerEmail: "c@d.com", OrderID: "order2",
		}

		w := env.do(t, http.MethodGet, "/orders", "")
		require.Equal(t, http.StatusOK, w.Code)
		var all []json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
		assert.Len(t, all, 2)

		w = env.do(t, http.MethodGet, "/orders?email=a@b.com", "")
		require.Equal(t, http.StatusOK, w.Code)
		var mine []json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
		assert.Len(t, mine, 1)
	})

	t.Run("DeleteOrder", func(t *testing.T) {
		env := setup(t)
		env.orders.m[orderKey("a@b.com", "order1")] = domain.Order{
			CustomerEmail: "a@b.com", OrderID: "order1",
		}

		w := env.do(t, http.MethodDelete,
			"/orders?email=a@b.com&orderId=order1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, env.orders.m)
	})

	t.Run("DeleteMissingOrderLeavesStoreUnchanged", func(t *testing.T) {
		env := setup(t)
		env.orders.m[orderKey("a@b.com", "order1")] = domain.Order{
			CustomerEmail: "a@b.com", OrderID: "order1",
		}

		w := env.do(t, http.MethodDelete,
			"/orders?email=x@y.com&orderId=zzz", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Order not found", strings.TrimSpace(w.Body.String()))
		assert.Len(t, env.orders.m, 1)
	})

	t.Run("DeleteWithoutParams", func(t *testing.T) {
		env := setup(t)

		w := env.do(t, http.MethodDelete, "/orders?email=a@b.com", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventsAPI(t *testing.T) {
	t.Run("RequiresCode", func(t *testing.T) {
		env := setup(t)

		w := env.do(t, http.MethodGet, "/events", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListsEventsForCode", func(t *testing.T) {
		env := setup(t)
		env.eventLog.recs = []domain.EventRecord{
			domain.NewEventRecord(domain.ProductEvent{
				ProductID:    "id1",
				ProductCode:  "C1",
				ProductPrice: 10,
				Email:        "a@b.com",
				RequestID:    "req1",
				Type:         domain.EventCreated,
			}, 1700000000123),
			domain.NewEventRecord(domain.ProductEvent{
				ProductCode: "OTHER",
				Type:        domain.EventDeleted,
			}, 1700000000456),
		}

		w := env.do(t, http.MethodGet, "/events?code=C1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var events []struct {
			EventType string `json:"eventType"`
			Email     string `json:"email"`
			CreatedAt int64  `json:"createdAt"`
			RequestID string `json:"requestId"`
			Info      struct {
				ProductID string  `json:"productId"`
				Price     float64 `json:"price"`
			} `json:"info"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
		require.Len(t, events, 1)
		assert.Equal(t, "PRODUCT_CREATED", events[0].EventType)
		assert.Equal(t, "a@b.com", events[0].Email)
		assert.Equal(t, int64(1700000000123), events[0].CreatedAt)
		assert.Equal(t, "req1", events[0].RequestID)
		assert.Equal(t, "id1", events[0].Info.ProductID)
		assert.InDelta(t, 10, events[0].Info.Price, 0)
	})
}

func TestUnroutableRequest(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodPatch, "/unknown", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Bad request", body["message"])
}
