package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnest-dev/vnest"
	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/vdom"
)

// newCounterServer serves a page with a button that counts its clicks.
func newCounterServer(t *testing.T) *Server {
	t.Helper()
	doc := dom.NewDocument()
	page := vnest.CreatePage(doc, vnest.WithMarkup(markup.Plain))

	count := 0
	var render func()
	render = func() {
		err := page.Render(vdom.Button(
			vdom.ID("inc"),
			vdom.OnClick(func(*dom.Event) {
				count++
				render()
			}),
			vdom.Textf("count %d", count),
		))
		if err != nil {
			t.Errorf("render: %v", err)
		}
	}
	render()

	reg := prometheus.NewRegistry()
	return New(doc, Config{Registerer: reg, Gatherer: reg})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSnapshot(t *testing.T) {
	s := newCounterServer(t)

	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="inc"`) || !strings.Contains(body, "count 0") {
		t.Errorf("snapshot missing page content: %s", body)
	}
	if !strings.Contains(body, "/_vnest/ws") {
		t.Error("snapshot missing client script")
	}
	if strings.Index(body, "<script>") > strings.Index(body, "</body>") {
		t.Error("client script should precede </body>")
	}
}

func TestHealthz(t *testing.T) {
	s := newCounterServer(t)

	rec := get(t, s.Handler(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
}

func TestClick(t *testing.T) {
	s := newCounterServer(t)

	if !s.Click(context.Background(), "inc") {
		t.Fatal("expected click delivered")
	}
	if !strings.Contains(s.Snapshot(), "count 1") {
		t.Error("expected count incremented")
	}
	if s.Click(context.Background(), "missing") {
		t.Error("expected unknown id to report false")
	}

	if got := testutil.ToFloat64(s.metrics.events.WithLabelValues("click", "ok")); got != 1 {
		t.Errorf("click ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.metrics.events.WithLabelValues("click", "not_found")); got != 1 {
		t.Errorf("click not_found = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.metrics.pushes); got != 1 {
		t.Errorf("pushes = %v, want 1", got)
	}
}

func TestUpdate(t *testing.T) {
	s := newCounterServer(t)

	err := s.Update(func(doc *dom.Document) error {
		doc.SetTitle("Live")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(s.metrics.mutations.WithLabelValues(dom.MutationSetTitle.String())); got != 1 {
		t.Errorf("title mutations = %v, want 1", got)
	}

	// no changes, no push
	before := testutil.ToFloat64(s.metrics.pushes)
	_ = s.Update(func(*dom.Document) error { return nil })
	if got := testutil.ToFloat64(s.metrics.pushes); got != before {
		t.Errorf("expected no push for an empty update, got %v", got)
	}
}

func TestUpdateUnchangedMarkupSkipsPush(t *testing.T) {
	s := newCounterServer(t)

	err := s.Update(func(doc *dom.Document) error {
		doc.GetElementByID("inc").SetAttribute("id", "inc")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(s.metrics.mutations.WithLabelValues(dom.MutationSetAttr.String())); got != 1 {
		t.Errorf("attribute mutations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.metrics.pushes); got != 0 {
		t.Errorf("pushes = %v, want 0 for identical markup", got)
	}

	// a real change after the skip still goes out
	s.Click(context.Background(), "inc")
	if got := testutil.ToFloat64(s.metrics.pushes); got != 1 {
		t.Errorf("pushes = %v, want 1", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newCounterServer(t)
	s.Click(context.Background(), "inc")

	rec := get(t, s.Handler(), "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	for _, name := range []string{"vnest_events_total", "vnest_mutations_total", "vnest_pushes_total"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("metrics missing %s", name)
		}
	}
}

func TestHandleMessageInvalid(t *testing.T) {
	s := newCounterServer(t)

	s.handleMessage(context.Background(), []byte("{"))
	s.handleMessage(context.Background(), []byte(`{"type":"hover","id":"inc"}`))

	if got := testutil.ToFloat64(s.metrics.events.WithLabelValues("invalid", "error")); got != 1 {
		t.Errorf("invalid = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.metrics.events.WithLabelValues("hover", "error")); got != 1 {
		t.Errorf("hover = %v, want 1", got)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocketRoundTrip(t *testing.T) {
	s := newCounterServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_vnest/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	if msg := readMessage(t, conn); msg.Type != MessageHead {
		t.Errorf("expected head first, got %q", msg.Type)
	}
	initial := readMessage(t, conn)
	if initial.Type != MessageBody || !strings.Contains(initial.HTML, "count 0") {
		t.Fatalf("unexpected initial body %+v", initial)
	}
	if s.ClientCount() != 1 {
		t.Errorf("expected 1 client, got %d", s.ClientCount())
	}

	if err := conn.WriteJSON(Message{Type: MessageClick, ID: "inc"}); err != nil {
		t.Fatal(err)
	}
	update := readMessage(t, conn)
	if update.Type != MessageBody || !strings.Contains(update.HTML, "count 1") {
		t.Errorf("unexpected update %+v", update)
	}
}
