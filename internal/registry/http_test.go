package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "foo" {
			t.Errorf("name query = %q, want %q", got, "foo")
		}
		if got := r.URL.Query().Get("ambient"); got != "true" {
			t.Errorf("ambient query = %q, want %q", got, "true")
		}
		fmt.Fprint(w, `{"results":[{"source":"env","name":"Environment"},{"source":"global"}]}`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	results, err := client.Search(context.Background(), SearchQuery{Name: "foo", Ambient: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Source != "env" || results[0].Label() != "Environment" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Label() != "global" {
		t.Errorf("results[1].Label() = %q, want fallback to source id", results[1].Label())
	}
}

func TestHTTPClientVersionsOrdering(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want := "/entries/global/foo/versions"; r.URL.Path != want {
			t.Errorf("path = %q, want %q", r.URL.Path, want)
		}
		fmt.Fprint(w, `{"versions":[
			{"version":"1.0.0","location":"loc-1"},
			{"version":"2.1.0","location":"loc-21"},
			{"version":"2.0.0","location":"loc-20"},
			{"version":"3.0.0","location":"loc-3"}
		]}`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	versions, err := client.Versions(context.Background(), "global", "foo", "2")
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}

	want := []string{"2.1.0", "2.0.0"}
	if len(versions) != len(want) {
		t.Fatalf("got %d versions, want %d", len(versions), len(want))
	}
	for i, v := range versions {
		if v.Version != want[i] {
			t.Errorf("versions[%d] = %q, want %q (newest matching first)", i, v.Version, want[i])
		}
	}
	if versions[0].Location != "loc-21" {
		t.Errorf("versions[0].Location = %q, want %q", versions[0].Location, "loc-21")
	}
}

func TestHTTPClientVersionsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"versions":[{"version":"1.0.0","location":"loc-1"}]}`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.Versions(context.Background(), "global", "foo", "9")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
}

func TestHTTPClientNotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.Versions(context.Background(), "global", "missing", "")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if notFound.Name != "missing" {
		t.Errorf("NotFoundError.Name = %q, want %q", notFound.Name, "missing")
	}
}

func TestHTTPClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.Search(context.Background(), SearchQuery{Name: "foo"})

	var regErr *RegistryError
	if !errors.As(err, &regErr) {
		t.Fatalf("err = %v, want *RegistryError", err)
	}
	if regErr.Op != "search" {
		t.Errorf("RegistryError.Op = %q, want %q", regErr.Op, "search")
	}
}

func TestMatchVersionsUnconstrained(t *testing.T) {
	index := []VersionInfo{
		{Version: "1.0.0", Location: "a"},
		{Version: "not-semver", Location: "b"},
		{Version: "2.0.0", Location: "c"},
	}

	matched, err := matchVersions(index, "")
	if err != nil {
		t.Fatalf("matchVersions: %v", err)
	}

	want := []string{"2.0.0", "1.0.0", "not-semver"}
	if len(matched) != len(want) {
		t.Fatalf("got %d entries, want %d", len(matched), len(want))
	}
	for i, m := range matched {
		if m.Version != want[i] {
			t.Errorf("matched[%d] = %q, want %q", i, m.Version, want[i])
		}
	}
}

func TestMatchVersionsBadConstraint(t *testing.T) {
	if _, err := matchVersions(nil, "not a constraint"); err == nil {
		t.Fatal("expected error for unparseable constraint")
	}
}
