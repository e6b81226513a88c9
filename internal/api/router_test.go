package api

import (
	"context"
	"encoding/json"
	"logistics-backoffice/internal/adapters/repositories"
	"logistics-backoffice/internal/api/dto"
	"logistics-backoffice/internal/platform/db"
	"logistics-backoffice/internal/platform/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (http.Handler, *repositories.Store) {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := repositories.InitSchema(context.Background(), conn, db.DriverSQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	store := repositories.NewStore(conn, db.DriverSQLite, logger.Nop())

	return NewRouter(Deps{Store: store, Log: logger.Nop(), MonthsCount: 6}), store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestDashboardEmpty(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	got := decode[dto.DashboardResponse](t, rec)
	if got.KPIs.TotalOrders != 0 || got.KPIs.Revenue != 0 {
		t.Fatalf("unexpected kpis: %+v", got.KPIs)
	}
	if len(got.Charts.Months) != 6 || len(got.Charts.ShipmentsPerMonth) != 6 {
		t.Fatalf("expected 6 months, got %v / %v", got.Charts.Months, got.Charts.ShipmentsPerMonth)
	}
	if len(got.Charts.StatusCounts) != 2 {
		t.Fatalf("statusCounts = %v, want two entries", got.Charts.StatusCounts)
	}
	if got.Tables.RecentShipments == nil || got.Tables.TopRoutes == nil {
		t.Fatalf("tables must encode as empty arrays, body %s", rec.Body.String())
	}
}

func TestDashboardJSONKeys(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/dashboard?months_count=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for section, keys := range map[string][]string{
		"kpis":   {"totalOrders", "deliveries", "pending", "revenue"},
		"charts": {"months", "shipmentsPerMonth", "statusCounts"},
		"tables": {"recentShipments", "topRoutes"},
	} {
		for _, k := range keys {
			if _, ok := raw[section][k]; !ok {
				t.Fatalf("missing %s.%s in %s", section, k, rec.Body.String())
			}
		}
	}

	var months []string
	if err := json.Unmarshal(raw["charts"]["months"], &months); err != nil || len(months) != 3 {
		t.Fatalf("months = %s, want 3 labels", raw["charts"]["months"])
	}
}

func TestDashboardRejectsBadMonthsCount(t *testing.T) {
	h, _ := newTestServer(t)

	for _, q := range []string{"0", "-2", "abc", "1201", "1099511627776"} {
		rec := do(t, h, http.MethodGet, "/api/dashboard?months_count="+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("months_count=%s: status = %d, want 400", q, rec.Code)
		}
		body := decode[map[string]string](t, rec)
		if body["error"] == "" {
			t.Fatalf("months_count=%s: missing error message", q)
		}
	}
}

func TestDashboardCountsShipments(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/routes/", `{"name":"Chicago → Houston"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create route: %d %s", rec.Code, rec.Body.String())
	}
	route := decode[dto.RouteResponse](t, rec)

	bodies := []string{
		`{"tracking_id":"TRK-A","customer_name":"Grace Miller","route_id":` + itoa(route.ID) + `,"status":"Delivered","revenue":100.25}`,
		`{"tracking_id":"TRK-B","customer_name":"Tunde Benedicta","status":"pending","revenue":11.05}`,
		`{"customer_name":"Oluchi Nwankwo","route_id":` + itoa(route.ID) + `,"status":"delayed"}`,
	}
	for _, b := range bodies {
		rec := do(t, h, http.MethodPost, "/api/shipments", b)
		if rec.Code != http.StatusOK {
			t.Fatalf("create shipment: %d %s", rec.Code, rec.Body.String())
		}
	}

	got := decode[dto.DashboardResponse](t, do(t, h, http.MethodGet, "/api/dashboard/", ""))
	if got.KPIs.TotalOrders != 3 || got.KPIs.Deliveries != 1 || got.KPIs.Pending != 1 {
		t.Fatalf("unexpected kpis: %+v", got.KPIs)
	}
	if got.KPIs.Revenue != 111.3 {
		t.Fatalf("revenue = %v, want 111.3", got.KPIs.Revenue)
	}
	if got.Charts.StatusCounts[0] != 1 || got.Charts.StatusCounts[1] != 1 {
		t.Fatalf("statusCounts = %v, want [1 1]", got.Charts.StatusCounts)
	}
	// Non-pending shipments are stamped as shipped now, so they land in the last month.
	if last := got.Charts.ShipmentsPerMonth[len(got.Charts.ShipmentsPerMonth)-1]; last != 2 {
		t.Fatalf("current month count = %d, want 2", last)
	}
	if len(got.Tables.RecentShipments) != 3 {
		t.Fatalf("recent = %d, want 3", len(got.Tables.RecentShipments))
	}
	if got.Tables.TopRoutes[0].Route != "Chicago → Houston" || got.Tables.TopRoutes[0].Count != 2 {
		t.Fatalf("top route = %+v", got.Tables.TopRoutes[0])
	}
	if got.Tables.TopRoutes[1].Route != "Unknown" {
		t.Fatalf("second route = %+v, want Unknown", got.Tables.TopRoutes[1])
	}
}

func TestCreateShipmentDefaults(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/shipments/", `{"customer_name":"Grace Miller"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	got := decode[dto.ShipmentView](t, rec)

	if !strings.HasPrefix(got.TrackingID, "TRK-") || len(got.TrackingID) != 12 {
		t.Fatalf("tracking id = %q", got.TrackingID)
	}
	if got.Status != "pending" || got.Revenue != 0 || got.ShippedAt != nil || got.Route != nil {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestCreateShipmentConflictAndValidation(t *testing.T) {
	h, _ := newTestServer(t)

	if rec := do(t, h, http.MethodPost, "/api/shipments", `{"tracking_id":"TRK-1"}`); rec.Code != http.StatusOK {
		t.Fatalf("first create: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodPost, "/api/shipments", `{"tracking_id":"TRK-1"}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: status = %d, want 409", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/shipments", `{"revenue":-1}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("negative revenue: status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/shipments", `{"unknown":1}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/shipments", `{} {}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("two objects: status = %d, want 400", rec.Code)
	}
}

func TestRecentAndTopRoutesLimits(t *testing.T) {
	h, _ := newTestServer(t)

	for range 10 {
		if rec := do(t, h, http.MethodPost, "/api/shipments", `{}`); rec.Code != http.StatusOK {
			t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
		}
	}

	recent := decode[[]dto.ShipmentView](t, do(t, h, http.MethodGet, "/api/shipments/recent", ""))
	if len(recent) != 8 {
		t.Fatalf("recent default = %d, want 8", len(recent))
	}
	recent = decode[[]dto.ShipmentView](t, do(t, h, http.MethodGet, "/api/shipments/recent?limit=3", ""))
	if len(recent) != 3 {
		t.Fatalf("recent limit=3 = %d", len(recent))
	}

	top := decode[[]dto.TopRoute](t, do(t, h, http.MethodGet, "/api/routes/top", ""))
	if len(top) != 1 || top[0].Route != "Unknown" || top[0].Count != 10 {
		t.Fatalf("top = %+v", top)
	}

	if rec := do(t, h, http.MethodGet, "/api/routes/top?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("limit=0: status = %d, want 400", rec.Code)
	}
}

func TestOrderWorkflow(t *testing.T) {
	h, _ := newTestServer(t)

	driver := decode[dto.DriverResponse](t, do(t, h, http.MethodPost, "/api/drivers/", `{"name":"Jane Smith"}`))
	product := decode[dto.ProductResponse](t, do(t, h, http.MethodPost, "/api/products/", `{"name":"Laptop","quantity":5}`))

	rec := do(t, h, http.MethodPost, "/api/fleets/", `{"name":"Fleet 1","driver_id":`+itoa(driver.ID)+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create fleet: %d %s", rec.Code, rec.Body.String())
	}
	fleet := decode[dto.FleetResponse](t, rec)
	if fleet.Status != "active" {
		t.Fatalf("fleet status = %q, want active", fleet.Status)
	}

	fleets := decode[[]dto.FleetResponse](t, do(t, h, http.MethodGet, "/api/fleets", ""))
	if len(fleets) != 1 || fleets[0].DriverName != "Jane Smith" {
		t.Fatalf("fleets = %+v", fleets)
	}

	rec = do(t, h, http.MethodPost, "/api/orders/webhook/", `{"order_id":"ORD-1","order_name":"Laptop order","product_id":`+itoa(product.ID)+`,"destination":"Chicago","customer_name":"Grace Miller"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("webhook: %d %s", rec.Code, rec.Body.String())
	}
	if o := decode[dto.OrderResponse](t, rec); o.Status != "pending" || o.FleetID != nil {
		t.Fatalf("new order = %+v", o)
	}

	rec = do(t, h, http.MethodPost, "/api/assign_fleet/?order_id=ORD-1&fleet_id="+itoa(fleet.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("assign: %d %s", rec.Code, rec.Body.String())
	}
	if msg := decode[dto.MessageResponse](t, rec); msg.Message != "Order assigned to fleet successfully" {
		t.Fatalf("message = %q", msg.Message)
	}

	orders := decode[[]dto.OrderResponse](t, do(t, h, http.MethodGet, "/api/orders/", ""))
	if len(orders) != 1 || orders[0].Status != "assigned" || orders[0].FleetID == nil || *orders[0].FleetID != fleet.ID {
		t.Fatalf("orders after assign = %+v", orders)
	}

	if rec := do(t, h, http.MethodPost, "/api/update_status?order_id=ORD-1&status=Delivered", ""); rec.Code != http.StatusOK {
		t.Fatalf("update status: %d %s", rec.Code, rec.Body.String())
	}
	orders = decode[[]dto.OrderResponse](t, do(t, h, http.MethodGet, "/api/orders", ""))
	if orders[0].Status != "delivered" {
		t.Fatalf("status = %q, want delivered", orders[0].Status)
	}

	if rec := do(t, h, http.MethodPost, "/api/assign_fleet?order_id=NOPE&fleet_id=1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown order assign: status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/update_status?order_id=NOPE&status=shipped", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown order update: status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/assign_fleet?order_id=ORD-1&fleet_id=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad fleet id: status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/orders/webhook", `{"order_id":"ORD-1","product_id":`+itoa(product.ID)+`}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate order: status = %d, want 409", rec.Code)
	}
}

func TestReportsCRUD(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/reports/", `{"title":"Weekly","content":"All good"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	rep := decode[dto.ReportResponse](t, rec)

	got := decode[dto.ReportResponse](t, do(t, h, http.MethodGet, "/api/reports/"+itoa(rep.ID), ""))
	if got.Title != "Weekly" || got.Content != "All good" {
		t.Fatalf("report = %+v", got)
	}

	if rec := do(t, h, http.MethodDelete, "/api/reports/"+itoa(rep.ID), ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodGet, "/api/reports/"+itoa(rep.ID), ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted: status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/reports/"+itoa(rep.ID), ""); rec.Code != http.StatusNotFound {
		t.Fatalf("delete deleted: status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/reports/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/reports", `{"content":"no title"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing title: status = %d, want 400", rec.Code)
	}
}

func TestListPaginationValidation(t *testing.T) {
	h, _ := newTestServer(t)

	for _, q := range []string{"skip=-1", "limit=0", "limit=1001", "skip=x"} {
		if rec := do(t, h, http.MethodGet, "/api/products?"+q, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", q, rec.Code)
		}
	}
	rec := do(t, h, http.MethodGet, "/api/products?skip=0&limit=10", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list: %d %q", rec.Code, rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t)

	if rec := do(t, h, http.MethodPut, "/api/dashboard", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodGet) {
		t.Fatalf("allow methods = %q, want GET", got)
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	h := corsMiddleware([]string{"https://ops.example.com"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for origin, want := range map[string]string{
		"https://ops.example.com":  "https://ops.example.com",
		"https://evil.example.com": "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != want {
			t.Fatalf("origin %s: allow origin = %q, want %q", origin, got, want)
		}
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := recoverMiddleware(logger.Nop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestBlankNamesRejected(t *testing.T) {
	h, _ := newTestServer(t)

	for path, body := range map[string]string{
		"/api/routes":   `{"name":"   "}`,
		"/api/products": `{"name":"\t"}`,
		"/api/drivers":  `{"name":" "}`,
		"/api/reports":  `{"title":"  ","content":"x"}`,
	} {
		rec := do(t, h, http.MethodPost, path, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: status = %d, want 400", path, body, rec.Code)
		}
	}

	routes := decode[[]dto.RouteResponse](t, do(t, h, http.MethodGet, "/api/routes", ""))
	if len(routes) != 0 {
		t.Fatalf("routes = %+v, want none stored", routes)
	}
}
