package stats

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchSingleTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/dominios/stats/reading" || r.URL.Query().Get("p") != "2" {
			t.Errorf("unexpected url %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"data":{"google_chart_data":[["dia","0-7","8-30"],["2024-01-01",3,4]]}}`))
	}))
	defer srv.Close()

	charts, err := NewClient(ClientOptions{BaseURL: srv.URL}).Fetch(context.Background(), Reading)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(charts) != 1 || len(charts[0].Table) != 2 {
		t.Fatalf("unexpected charts %+v", charts)
	}
}

func TestFetchNamedTablesInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"google_chart_data":{
			"week":[["semana","total"],["1",10]],
			"year":[["año","total"],["2025",1200]],
			"day":[["dia","total"],["lunes",2]]}}}`))
	}))
	defer srv.Close()

	charts, err := NewClient(ClientOptions{BaseURL: srv.URL}).Fetch(context.Background(), Expirations)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	var names, titles []string
	for _, c := range charts {
		names = append(names, c.Name)
		titles = append(titles, c.Title)
	}
	if strings.Join(names, ",") != "year,day,week" {
		t.Fatalf("unexpected order %v", names)
	}
	want := "Dominios que vencen por año|Dominios que vencen cada día|Dominios que vencen cada semana"
	if got := strings.Join(titles, "|"); got != want {
		t.Fatalf("unexpected titles %q", got)
	}
}

func TestFetchGeneralTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"google_chart_data":{
			"hora":[["hora","total"],["10",3]],
			"dia":[["dia","total"],["lunes",2]],
			"semana":[["semana","total"],["1",10]]}}}`))
	}))
	defer srv.Close()

	charts, err := NewClient(ClientOptions{BaseURL: srv.URL}).Fetch(context.Background(), General)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	want := []string{
		"Lectura de dominios por hora",
		"Lectura de dominios por día",
		"Lectura de dominios por semana",
	}
	if len(charts) != len(want) {
		t.Fatalf("expected %d charts, got %d", len(want), len(charts))
	}
	for i, c := range charts {
		if c.Title != want[i] {
			t.Fatalf("chart %s: expected title %q, got %q", c.Name, want[i], c.Title)
		}
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(ClientOptions{BaseURL: srv.URL}).Fetch(context.Background(), General); err == nil {
		t.Fatal("expected error")
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("general"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownFeed) {
		t.Fatalf("expected ErrUnknownFeed, got %v", err)
	}
}

func TestRenderTextStacksSeries(t *testing.T) {
	chart := Chart{
		Title: "t",
		Table: Table{
			{"dia", "a", "b"},
			{"lunes", 1000.0, 500.0},
			{"martes", 750.0, 0.0},
		},
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, chart); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "lunes  |"+strings.Repeat("#", barWidth)+" 1,500") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "martes |"+strings.Repeat("#", 20)+" 750") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
