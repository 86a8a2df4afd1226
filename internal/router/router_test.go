package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-ops/internal/config"
	"github.com/iliyamo/restaurant-ops/internal/handler"
	mw "github.com/iliyamo/restaurant-ops/internal/middleware"
	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/repository"
	"github.com/iliyamo/restaurant-ops/internal/service"
)

var fixedNow = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// recorder captures published events and archive writes, optionally
// failing every call.
type recorder struct {
	mu     sync.Mutex
	fail   bool
	events []string
	saved  []string
}

func (r *recorder) record(list *[]string, s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("broker down")
	}
	*list = append(*list, s)
	return nil
}

func (r *recorder) BookingConfirmed(_ context.Context, b model.Booking) error {
	return r.record(&r.events, "booking.confirmed "+b.ID)
}

func (r *recorder) OrderPlaced(_ context.Context, o model.Order) error {
	return r.record(&r.events, "order.placed "+o.ID)
}

func (r *recorder) OrderStatusChanged(_ context.Context, o model.Order, _ time.Time) error {
	return r.record(&r.events, "order.status_changed "+o.ID+" "+string(o.Status))
}

func (r *recorder) SaveBooking(_ context.Context, b model.Booking) error {
	return r.record(&r.saved, "booking "+b.ID)
}

func (r *recorder) SaveOrder(_ context.Context, o model.Order) error {
	return r.record(&r.saved, "order "+o.ID)
}

func (r *recorder) UpdateOrderStatus(_ context.Context, id string, status model.OrderStatus, _ time.Time) error {
	return r.record(&r.saved, "status "+id+" "+string(status))
}

type testServer struct {
	e      *echo.Echo
	tables *repository.TableRepo
	menu   *repository.MenuRepo
	rec    *recorder
	purges int
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	seed, err := config.LoadSeed("")
	require.NoError(t, err)
	tables, err := repository.NewTableRepo(seed.Tables)
	require.NoError(t, err)
	menu, err := repository.NewMenuRepo(seed.Menu)
	require.NoError(t, err)
	clock := func() time.Time { return fixedNow }
	bookings := repository.NewBookingRepo(sequentialIDs("booking"), clock)
	orders := repository.NewOrderRepo(sequentialIDs("order"), clock)

	s := &testServer{e: echo.New(), tables: tables, menu: menu, rec: &recorder{}}
	orderHandler := handler.NewOrderHandler(orders, menu, s.rec, s.rec)
	orderHandler.Now = clock
	RegisterRoutes(s.e, Handlers{
		Health: handler.APIHealth(clock),
		Tables: handler.NewTableHandler(tables),
		Menu: handler.NewMenuHandler(menu, func(context.Context) error {
			s.purges++
			return nil
		}),
		Bookings: handler.NewBookingHandler(bookings, s.rec, s.rec),
		Orders:   orderHandler,
		Stats:    handler.NewStatsHandler(service.NewStatsService(tables, bookings, orders)),
	}, nil, nil)
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

const validBooking = `{"customerName":"Ayse Yilmaz","customerEmail":"ayse@example.com","customerPhone":"05550000000",` +
	`"date":"2025-03-20","time":"19:30","guestCount":4,"specialRequests":"window seat"}`

const validOrder = `{"tableRef":{"qrToken":"table-3"},"lineItems":[{"menuItemRef":1,"quantity":2},{"menuItemRef":3,"quantity":1}]}`

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","timestamp":"2025-03-14T18:30:00Z"}`, rec.Body.String())
}

func TestTables_ListGolden(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/tables", "")
	require.Equal(t, http.StatusOK, rec.Code)
	golden(t).Assert(t, "tables_list", rec.Body.Bytes())
}

func TestTables_Lookup(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/tables/qr/table-4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decode[model.Table](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/tables/qr/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/tables/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/tables/abc", "").Code)
}

func TestTables_UpdateStatus(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/tables/1/status", `{"status":"occupied"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TableOccupied, decode[model.Table](t, rec).Status)

	rec = s.do(t, http.MethodPut, "/api/tables/1/status", `{"status":"dirty"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid argument")

	rec = s.do(t, http.MethodPut, "/api/tables/99/status", `{"status":"available"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/stats", "")
	st := decode[model.StatsSnapshot](t, rec)
	assert.Equal(t, 1, st.AvailableTables)
	assert.Equal(t, 2, st.OccupiedTables)
}

func TestTables_Create(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/tables", `{"number":5,"capacity":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	tb := decode[model.Table](t, rec)
	assert.Equal(t, 5, tb.ID)
	assert.Equal(t, model.TableAvailable, tb.Status)
	assert.Equal(t, "table-5", tb.QRToken)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/tables", `{"number":6,"capacity":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/tables", `{"number":6,"capacity":2,"qrToken":"table-1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/tables", `{"number":`).Code)
}

func TestMenu_GetGolden(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/menu/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	golden(t).Assert(t, "menu_item", rec.Body.Bytes())
}

func TestMenu_CRUD(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/menu", `{"name":"Ayran","price":12.5,"category":"Icecek"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.MenuItem](t, rec)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, "12.5", created.Price.String())

	rec = s.do(t, http.MethodPut, "/api/menu/5", `{"price":"15"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.MenuItem](t, rec)
	assert.Equal(t, "Ayran", updated.Name)
	assert.Equal(t, "15", updated.Price.String())

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/menu/5", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/menu/5", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/menu/5", "").Code)
	assert.Equal(t, 3, s.purges, "every successful mutation purges the cache")

	items := decode[[]model.MenuItem](t, s.do(t, http.MethodGet, "/api/menu", ""))
	assert.Len(t, items, 4)
}

func TestMenu_Validation(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/menu", `{"name":"","price":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/menu", `{"name":"X","price":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/menu/1", `{"name":"  "}`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/menu/42", `{"name":"X"}`).Code)
	assert.Zero(t, s.purges)
}

func TestBookings_CreateGolden(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/bookings", validBooking)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	golden(t).Assert(t, "booking_created", rec.Body.Bytes())

	assert.Equal(t, []string{"booking.confirmed booking-1"}, s.rec.events)
	assert.Equal(t, []string{"booking booking-1"}, s.rec.saved)

	rec = s.do(t, http.MethodGet, "/api/bookings/booking-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Booking](t, s.do(t, http.MethodGet, "/api/bookings", "")), 1)
}

func TestBookings_Validation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/bookings", `{"customerName":"A","date":"2025-03-20","time":"19:30","guestCount":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid argument: customerPhone is required"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/bookings", strings.Replace(validBooking, `"guestCount":4`, `"guestCount":0`, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, s.rec.events)
	assert.Len(t, decode[[]model.Booking](t, s.do(t, http.MethodGet, "/api/bookings", "")), 0)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/bookings/missing", "").Code)
}

func TestBookings_SideEffectFailureDoesNotFailRequest(t *testing.T) {
	s := newTestServer(t)
	s.rec.fail = true

	rec := s.do(t, http.MethodPost, "/api/bookings", validBooking)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, decode[[]model.Booking](t, s.do(t, http.MethodGet, "/api/bookings", "")), 1)
}

func TestOrders_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/orders", validOrder)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	o := decode[model.Order](t, rec)
	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, model.OrderPending, o.Status)

	st := decode[model.StatsSnapshot](t, s.do(t, http.MethodGet, "/api/stats", ""))
	assert.Equal(t, 1, st.PendingOrders)

	rec = s.do(t, http.MethodPut, "/api/orders/order-1/status", `{"status":"preparing"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.OrderPreparing, decode[model.Order](t, rec).Status)

	st = decode[model.StatsSnapshot](t, s.do(t, http.MethodGet, "/api/stats", ""))
	assert.Equal(t, 1, st.TotalOrders)
	assert.Equal(t, 0, st.PendingOrders)

	assert.Equal(t, []string{"order.placed order-1", "order.status_changed order-1 preparing"}, s.rec.events)
	assert.Equal(t, []string{"order order-1", "status order-1 preparing"}, s.rec.saved)
}

func TestOrders_Errors(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/orders", `{"tableRef":{"id":1},"lineItems":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/orders", `{"lineItems":[{"menuItemRef":1,"quantity":1}]}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/orders", `{"tableRef":{"id":1},"lineItems":[{"menuItemRef":1,"quantity":0}]}`).Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/orders/nope/status", `{"status":"ready"}`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/orders/nope", "").Code)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/orders", validOrder).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/orders/order-1/status", `{"status":"eaten"}`).Code)
}

func TestOrders_Total(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/orders", validOrder).Code)

	rec := s.do(t, http.MethodGet, "/api/orders/order-1/total", "")
	require.Equal(t, http.StatusOK, rec.Code)
	golden(t).Assert(t, "order_total", rec.Body.Bytes())

	// Removing a referenced item leaves the order in place but it can no
	// longer be priced.
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/menu/3", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/orders/order-1", "").Code)
	rec = s.do(t, http.MethodGet, "/api/orders/order-1/total", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "menu item 3")
}

func TestStats_GoldenAndUncached(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
	golden(t).Assert(t, "stats_initial", rec.Body.Bytes())

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/bookings", validBooking).Code)
	st := decode[model.StatsSnapshot](t, s.do(t, http.MethodGet, "/api/stats", ""))
	assert.Equal(t, 1, st.TotalBookings)
	assert.Equal(t, st.TotalTables, st.AvailableTables+st.OccupiedTables+st.ReservedTables)
}

func TestRegisterRoutes_AppliesMiddleware(t *testing.T) {
	var limited, cached []string
	mark := func(list *[]string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				*list = append(*list, c.Path())
				return next(c)
			}
		}
	}
	s := newTestServer(t)
	e := echo.New()
	seedTables, _ := s.tables.List(context.Background())
	require.Len(t, seedTables, 4)

	orders := repository.NewOrderRepo(nil, nil)
	bookings := repository.NewBookingRepo(nil, nil)
	RegisterRoutes(e, Handlers{
		Health:   handler.APIHealth(nil),
		Tables:   handler.NewTableHandler(s.tables),
		Menu:     handler.NewMenuHandler(s.menu, nil),
		Bookings: handler.NewBookingHandler(bookings, nil, nil),
		Orders:   handler.NewOrderHandler(orders, s.menu, nil, nil),
		Stats:    handler.NewStatsHandler(service.NewStatsService(s.tables, bookings, orders)),
	}, mark(&limited), mark(&cached))

	for _, p := range []string{"/healthz", "/api/menu", "/api/stats", "/api/menu/1"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		require.Equal(t, http.StatusOK, rec.Code, p)
	}
	assert.Equal(t, []string{"/api/menu", "/api/stats", "/api/menu/:id"}, limited)
	assert.Equal(t, []string{"/api/menu", "/api/menu/:id"}, cached)
}

func TestMenuCache_PurgedOnMutation(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cacheCfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{http.MethodGet: true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "menucache",
	}

	s := newTestServer(t)
	e := echo.New()
	bookings := repository.NewBookingRepo(nil, nil)
	orders := repository.NewOrderRepo(nil, nil)
	RegisterRoutes(e, Handlers{
		Health: handler.APIHealth(nil),
		Tables: handler.NewTableHandler(s.tables),
		Menu: handler.NewMenuHandler(s.menu, func(ctx context.Context) error {
			return mw.PurgeCache(ctx, rdb, cacheCfg.Prefix)
		}),
		Bookings: handler.NewBookingHandler(bookings, nil, nil),
		Orders:   handler.NewOrderHandler(orders, s.menu, nil, nil),
		Stats:    handler.NewStatsHandler(service.NewStatsService(s.tables, bookings, orders)),
	}, nil, mw.NewRedisCache(cacheCfg, rdb))
	s.e = e

	rec := s.do(t, http.MethodGet, "/api/menu/1", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	rec = s.do(t, http.MethodGet, "/api/menu/1", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	// a different id is never answered from another item's entry
	rec = s.do(t, http.MethodGet, "/api/menu/2", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "Spaghetti Carbonara", decode[model.MenuItem](t, rec).Name)
	require.Equal(t, "HIT", s.do(t, http.MethodGet, "/api/menu/2", "").Header().Get("X-Cache"))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/menu/1", `{"name":"Pizza Margherita"}`).Code)
	assert.Empty(t, mr.Keys())

	rec = s.do(t, http.MethodGet, "/api/menu/1", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "Pizza Margherita", decode[model.MenuItem](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/menu", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Len(t, decode[[]model.MenuItem](t, rec), 4)

	// stats are never cached
	assert.Empty(t, s.do(t, http.MethodGet, "/api/stats", "").Header().Get("X-Cache"))
}
