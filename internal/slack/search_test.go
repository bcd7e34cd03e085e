package slack

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

// searchIndex serves search.messages pages from fixed match data.
func searchIndex(f *fakeWorkspace, pages ...[]map[string]any) {
	f.handle("search.messages", func(w http.ResponseWriter, r *http.Request) {
		idx := 0
		if cur := r.URL.Query().Get("cursor"); cur != "" {
			for i := range pages {
				if pageCursor(i) == cur {
					idx = i
					break
				}
			}
		}
		next := ""
		if idx < len(pages)-1 {
			next = pageCursor(idx + 1)
		}
		writeOK(w, map[string]any{
			"messages":          map[string]any{"matches": pages[idx]},
			"response_metadata": map[string]any{"next_cursor": next},
		})
	})
}

func searchMatches(n, from int) []map[string]any {
	matches := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		matches[i] = map[string]any{
			"text":    "deploy attempt",
			"ts":      "1700000000.00010" + string(rune('0'+from+i)),
			"channel": map[string]any{"id": "C0000000001", "name": "deploys"},
		}
	}
	return matches
}

func TestSearchStopsOnceLimitSatisfied(t *testing.T) {
	f := newFakeWorkspace(t)
	// 12 matches across two pages of 8 and 4.
	searchIndex(f, searchMatches(8, 0), searchMatches(4, 8))

	c := newTestClient(t, f)
	messages, err := c.SearchMessages(context.Background(), "deploy", "", 5)
	if err != nil {
		t.Fatalf("SearchMessages() error = %v", err)
	}
	if len(messages) != 5 {
		t.Errorf("SearchMessages() returned %d messages, want exactly 5", len(messages))
	}
	if got := f.count("search.messages"); got != 1 {
		t.Errorf("search.messages called %d times, want 1 (limit satisfied by page 1)", got)
	}
}

func TestSearchWalksPagesUpToLimit(t *testing.T) {
	f := newFakeWorkspace(t)
	searchIndex(f, searchMatches(8, 0), searchMatches(4, 8))

	c := newTestClient(t, f)
	messages, err := c.SearchMessages(context.Background(), "deploy", "", 50)
	if err != nil {
		t.Fatalf("SearchMessages() error = %v", err)
	}
	if len(messages) != 12 {
		t.Errorf("SearchMessages() returned %d messages, want all 12", len(messages))
	}
	if got := f.count("search.messages"); got != 2 {
		t.Errorf("search.messages called %d times, want 2", got)
	}
	if messages[0].ChannelName != "deploys" || messages[0].ChannelID != "C0000000001" {
		t.Errorf("message[0] channel = %s/%s, want deploys/C0000000001", messages[0].ChannelName, messages[0].ChannelID)
	}
}

func TestSearchRejectsInvalidLimit(t *testing.T) {
	f := newFakeWorkspace(t)
	f.handle("search.messages", func(w http.ResponseWriter, r *http.Request) {
		t.Error("search.messages called despite invalid limit")
	})

	c := newTestClient(t, f)
	_, err := c.SearchMessages(context.Background(), "deploy", "", 0)
	if !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("SearchMessages(limit=0) error = %v, want ErrInvalidLimit", err)
	}
}

func TestSearchScopedToChannel(t *testing.T) {
	f := newFakeWorkspace(t)
	channelDirectory(f, []map[string]any{
		{"id": "C0000000009", "name": "engineering"},
	})
	f.handle("conversations.info", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]any{"channel": map[string]any{"id": "C0000000009", "name": "engineering"}})
	})

	var gotQuery string
	f.handle("search.messages", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		writeOK(w, map[string]any{"messages": map[string]any{"matches": []map[string]any{}}})
	})

	c := newTestClient(t, f)
	if _, err := c.SearchMessages(context.Background(), "deploy", "engineering", 5); err != nil {
		t.Fatalf("SearchMessages() error = %v", err)
	}
	if gotQuery != "in:#engineering deploy" {
		t.Errorf("search query = %q, want channel scope qualifier", gotQuery)
	}
}

func TestSearchScopedChannelNotFound(t *testing.T) {
	f := newFakeWorkspace(t)
	channelDirectory(f, []map[string]any{
		{"id": "C0000000001", "name": "general"},
	})
	f.handle("search.messages", func(w http.ResponseWriter, r *http.Request) {
		t.Error("search.messages called despite unresolvable channel scope")
	})

	c := newTestClient(t, f)
	_, err := c.SearchMessages(context.Background(), "deploy", "nonexistent", 5)
	if !IsNotFound(err) {
		t.Errorf("SearchMessages() error = %v, want not-found", err)
	}
}

func TestSearchPermissionDeniedForBotToken(t *testing.T) {
	f := newFakeWorkspace(t)
	f.handle("search.messages", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, "not_allowed_token_type")
	})

	c := newTestClient(t, f)
	_, err := c.SearchMessages(context.Background(), "deploy", "", 5)
	ce := Classify(err)
	if ce == nil || ce.Kind != KindPermission {
		t.Errorf("SearchMessages() classified = %v, want permission", ce)
	}
	if got := f.count("search.messages"); got != 1 {
		t.Errorf("search.messages called %d times, want 1 (permission failures are not retried)", got)
	}
}
