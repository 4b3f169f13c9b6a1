package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/debtburn/internal/logging"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/notify"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/store"
)

func newTestServer(t *testing.T, seed bool) (*Service, *httptest.Server) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Options{Driver: store.Memory})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger := logging.Discard()
	srv := New(Config{EventsBuffer: 50}, logger)
	svc := portfolio.NewService(st, srv, logger)
	srv.Attach(svc)
	if seed {
		if _, err := svc.SeedSample(ctx); err != nil {
			t.Fatalf("SeedSample: %v", err)
		}
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, false)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestSummaryAndProjection(t *testing.T) {
	_, ts := newTestServer(t, true)

	var m model.SummaryMetrics
	if code := doJSON(t, http.MethodGet, ts.URL+"/v1/summary", "", &m); code != http.StatusOK {
		t.Fatalf("summary status = %d", code)
	}
	if m.TotalBalance != 42500 || m.LoanCount != 3 || m.BillCount != 4 {
		t.Errorf("summary = %+v", m)
	}

	var sim model.SimulatorResult
	if code := doJSON(t, http.MethodGet, ts.URL+"/v1/projection?extra=200", "", &sim); code != http.StatusOK {
		t.Fatalf("projection status = %d", code)
	}
	if sim.Current.Months != 53 || sim.Baseline.Months != 70 || sim.MonthsSaved != 17 {
		t.Errorf("projection = %+v", sim)
	}

	var cmp model.Comparison
	if code := doJSON(t, http.MethodGet, ts.URL+"/v1/strategies", "", &cmp); code != http.StatusOK {
		t.Fatalf("strategies status = %d", code)
	}
	if cmp.Recommended != model.Snowball || cmp.Savings != 0 {
		t.Errorf("strategies = %s, savings %v; want snowball, 0", cmp.Recommended, cmp.Savings)
	}
}

func TestBadExtra(t *testing.T) {
	_, ts := newTestServer(t, true)
	for _, path := range []string{"/v1/strategies", "/v1/projection"} {
		for _, q := range []string{"abc", "-50", "NaN", "Inf", "-Inf", "1e400"} {
			var body errorBody
			code := doJSON(t, http.MethodGet, ts.URL+path+"?extra="+q, "", &body)
			if code != http.StatusBadRequest {
				t.Errorf("%s extra=%s status = %d, want 400", path, q, code)
			}
			if body.Error == "" {
				t.Errorf("%s extra=%s: empty error body", path, q)
			}
		}
	}
}

func TestLoanCRUD(t *testing.T) {
	srv, ts := newTestServer(t, false)

	var created model.Loan
	code := doJSON(t, http.MethodPost, ts.URL+"/v1/loans",
		`{"name":"Car Loan","balance":9000,"original_balance":"12000","interest_rate":6.9,"minimum_payment":250,"type":"auto"}`,
		&created)
	if code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", code)
	}
	if created.ID == "" || created.Balance != 9000 || created.OriginalBalance != 12000 {
		t.Fatalf("created = %+v", created)
	}

	var updated model.Loan
	code = doJSON(t, http.MethodPut, ts.URL+"/v1/loans/"+created.ID,
		`{"name":"Car Loan","balance":8500,"interest_rate":6.9,"minimum_payment":250,"type":"auto"}`,
		&updated)
	if code != http.StatusOK || updated.Balance != 8500 {
		t.Fatalf("PUT = %d, %+v", code, updated)
	}

	var loans []model.Loan
	doJSON(t, http.MethodGet, ts.URL+"/v1/loans", "", &loans)
	if len(loans) != 1 || loans[0].Balance != 8500 {
		t.Fatalf("GET loans = %+v", loans)
	}

	if code := doJSON(t, http.MethodDelete, ts.URL+"/v1/loans/"+created.ID, "", nil); code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", code)
	}

	events := srv.recentEvents()
	want := []notify.Kind{notify.LoanAdded, notify.LoanUpdated, notify.LoanDeleted}
	if len(events) != len(want) {
		t.Fatalf("events = %d, want %d", len(events), len(want))
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Errorf("event %d = %q, want %q", i, events[i].Kind, k)
		}
	}
}

func TestErrorMapping(t *testing.T) {
	_, ts := newTestServer(t, false)

	var body errorBody
	code := doJSON(t, http.MethodPost, ts.URL+"/v1/loans", `{"name":"","balance":-1}`, &body)
	if code != http.StatusBadRequest {
		t.Errorf("invalid loan status = %d, want 400", code)
	}
	if !strings.Contains(body.Error, "name") {
		t.Errorf("error = %q, want field name", body.Error)
	}

	code = doJSON(t, http.MethodPut, ts.URL+"/v1/bills/missing",
		`{"name":"Rent","amount":1200,"due_date":1,"category":"housing"}`, &body)
	if code != http.StatusNotFound {
		t.Errorf("unknown bill status = %d, want 404", code)
	}

	code = doJSON(t, http.MethodPost, ts.URL+"/v1/bills", `{not json`, &body)
	if code != http.StatusBadRequest {
		t.Errorf("bad JSON status = %d, want 400", code)
	}
}

func TestListBillsIncludesSchedule(t *testing.T) {
	_, ts := newTestServer(t, true)

	var bills []billView
	if code := doJSON(t, http.MethodGet, ts.URL+"/v1/bills", "", &bills); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(bills) != 4 {
		t.Fatalf("bills = %d, want 4", len(bills))
	}
	for _, b := range bills {
		if b.Schedule.Label == "" || b.Schedule.DaysUntilDue < 0 {
			t.Errorf("bill %s schedule = %+v", b.Name, b.Schedule)
		}
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, logging.Discard())

	for _, id := range []string{"1", "2", "3"} {
		_ = s.Notify(context.Background(), notify.Event{ID: id})
	}

	events := s.recentEvents()
	if len(events) != 2 {
		t.Fatalf("events len = %d, want 2", len(events))
	}
	if events[0].ID != "2" || events[1].ID != "3" {
		t.Fatalf("events ring contains IDs [%s, %s], want [2, 3]", events[0].ID, events[1].ID)
	}
}

func TestStreamDeliversEvents(t *testing.T) {
	_, ts := newTestServer(t, false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /v1/stream: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	if line, _ := reader.ReadString('\n'); !strings.HasPrefix(line, ": connected") {
		t.Fatalf("first line = %q", line)
	}
	_, _ = reader.ReadString('\n')

	code := doJSON(t, http.MethodPost, ts.URL+"/v1/bills",
		`{"name":"Rent","amount":1200,"due_date":1,"category":"housing","is_recurring":true}`, nil)
	if code != http.StatusCreated {
		t.Fatalf("POST bill status = %d", code)
	}

	eventLine, _ := reader.ReadString('\n')
	dataLine, _ := reader.ReadString('\n')
	if strings.TrimSpace(eventLine) != "event: bill.added" {
		t.Errorf("event line = %q", eventLine)
	}
	ev, err := notify.EventFromJSON([]byte(strings.TrimPrefix(strings.TrimSpace(dataLine), "data: ")))
	if err != nil {
		t.Fatalf("decoding data line %q: %v", dataLine, err)
	}
	if ev.Title != "Bill Added" {
		t.Errorf("Title = %q, want Bill Added", ev.Title)
	}
}
