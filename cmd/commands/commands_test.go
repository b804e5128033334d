package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ncobase/listing/paging"
	"github.com/ncobase/listing/search"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestComposeGraphQL(t *testing.T) {
	out, err := run(t, "compose", "--topics", "a,b", "--author", "x", "-q", "cloud")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	for _, want := range []string{
		`{ OR: [ { name: "topics", value: "a", operator: CONTAINS }, { name: "topics", value: "b", operator: CONTAINS } ] }`,
		`{ name: "authorId", value: "x", operator: EQ }`,
		`{ name: "freeText", value: "cloud", operator: CONTAINS }`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestComposeMeilisearch(t *testing.T) {
	out, err := run(t, "compose", "-e", "meilisearch", "--topics", "a", "-q", "cloud")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(out, `"topics = \"a\""`) || !strings.Contains(out, `query: "cloud"`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestComposeRejectsBadInput(t *testing.T) {
	if _, err := run(t, "compose", "--flag", "maybe"); err == nil {
		t.Errorf("expected error for invalid flag")
	}
	if _, err := run(t, "compose", "--token", "__MISSING__"); err == nil {
		t.Errorf("expected error for token absent from template")
	}
	if _, err := run(t, "compose", "-e", "solr"); err == nil {
		t.Errorf("expected error for unknown engine")
	}
}

func TestBrowseLoadsPages(t *testing.T) {
	var requests []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		var page *paging.Page[search.Item]
		switch r.URL.Query().Get("after") {
		case "":
			page = &paging.Page[search.Item]{Items: []search.Item{{ID: "1", Title: "One"}}, Total: 3, HasNext: true, Cursor: "c1"}
		case "c1":
			page = &paging.Page[search.Item]{Items: []search.Item{{ID: "2", Title: "Two"}}, Total: 3, HasNext: true, Cursor: "c2"}
		default:
			page = &paging.Page[search.Item]{Items: []search.Item{{ID: "3", Title: "Three"}}, Total: 3}
		}
		_ = json.NewEncoder(w).Encode(search.Succeed(page, search.NewMeta("r", time.Now())))
	}))
	defer api.Close()

	out, err := run(t, "browse", "--api", api.URL, "--site", "corp", "--topics", "a", "--pages", "2", "--page-size", "1")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %v", requests)
	}
	if !strings.Contains(requests[0], "topics=a") || !strings.Contains(requests[0], "pageSize=1") {
		t.Errorf("unexpected first request %q", requests[0])
	}
	if !strings.Contains(out, "One") || !strings.Contains(out, "Two") || strings.Contains(out, "Three") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "loaded 2 of 3, more: true") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestBrowseJSON(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := &paging.Page[search.Item]{Items: []search.Item{{ID: "1"}}, Total: 1}
		_ = json.NewEncoder(w).Encode(search.Succeed(page, search.NewMeta("r", time.Now())))
	}))
	defer api.Close()

	out, err := run(t, "browse", "--api", api.URL, "--json", "--pages", "5")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	var got struct {
		Items   []search.Item `json:"items"`
		HasMore bool          `json:"hasMore"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got.Items) != 1 || got.HasMore {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestBrowseBackendFailure(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":-1002,"message":"down"}}`))
	}))
	defer api.Close()
	if _, err := run(t, "browse", "--api", api.URL); err == nil {
		t.Errorf("expected error when the API reports failure")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil || !strings.Contains(out, "Version:") {
		t.Errorf("unexpected version output %q, %v", out, err)
	}
}
