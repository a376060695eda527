package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLineup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lineup" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"revision":3,"slots":[{"order":1,"label":"投","player":null,"removable":false}]}`))
	}))
	defer srv.Close()

	view, err := New(srv.URL).Lineup(context.Background())
	if err != nil {
		t.Fatalf("lineup: %v", err)
	}
	if view.Revision != 3 || len(view.Slots) != 1 || view.Slots[0].Label != "投" {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestRandomSendsIDs(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = w.Write([]byte(`{"revision":1}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL+"/").Random(context.Background(), []string{"a", "b"}); err != nil {
		t.Fatalf("random: %v", err)
	}
	if len(got["playerIds"]) != 2 {
		t.Fatalf("expected two ids sent, got %v", got)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"could not fill defensive positions","requestId":"r1"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Random(context.Background(), nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.RequestID != "r1" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestTableIsPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#  POS\n1  投\n"))
	}))
	defer srv.Close()

	table, err := New(srv.URL).LineupTable(context.Background())
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if table != "#  POS\n1  投\n" {
		t.Fatalf("unexpected table %q", table)
	}
}
