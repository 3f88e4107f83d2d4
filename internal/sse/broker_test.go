package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/starford/folio/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "content.synced", Data: map[string]int{"projects": 2}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: content.synced") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"projects":2`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishMessage_InboxThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishMessage(&models.Message{ID: "m1", Name: "Ada", Email: "ada@example.com", Message: "secret body"})
	b.PublishMessage(&models.Message{ID: "m2", Name: "Bob", Email: "bob@example.com"})

	time.Sleep(50 * time.Millisecond)
	inboxCount := 0
	messageCount := 0
loop:
	for {
		select {
		case msg := <-ch:
			s := string(msg)
			if strings.Contains(s, "secret body") {
				t.Errorf("message body leaked into stream: %q", s)
			}
			switch {
			case strings.Contains(s, "event: "+EventInboxUpdated):
				inboxCount++
			case strings.Contains(s, "event: "+EventMessageCreated):
				messageCount++
			}
		default:
			break loop
		}
	}

	if messageCount != 2 {
		t.Errorf("message events = %d, want 2", messageCount)
	}
	if inboxCount != 1 {
		t.Errorf("inbox events = %d, want 1 (throttled)", inboxCount)
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for b.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 1 client from handler")
		}
		time.Sleep(5 * time.Millisecond)
	}

	b.PublishMessage(&models.Message{ID: "x", Name: "X", Email: "x@example.com"})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: message.created") {
		t.Errorf("handler output missing event: %q", body)
	}
	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("content type = %q", got)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestConcurrentPublishers(t *testing.T) {
	b := NewBroker(time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.PublishMessage(&models.Message{ID: "m"})
		}()
	}
	wg.Wait()
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	b.Publish(Event{Type: "test"})
	b.PublishMessage(&models.Message{ID: "x"})
	b.Close()
}
