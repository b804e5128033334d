package site

import (
	"errors"
	"testing"
)

func testSites() []Site {
	return []Site{
		{Name: "Corporate", Hosts: []string{"www.example.com"}, Languages: []string{"en", "de"}},
		{Name: "Partner Portal", Hosts: []string{"partners.example.com"}, Languages: []string{"en"}, DefaultLanguage: "en"},
	}
}

func TestResolveByName(t *testing.T) {
	r, err := NewResolver(testSites(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := r.Resolve("partner-portal", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "Partner Portal" {
		t.Errorf("expected Partner Portal, got %q", s.Name)
	}
	if _, err := r.Resolve("missing", ""); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("expected ErrSiteNotFound, got %v", err)
	}
}

func TestResolveUnknownNameDoesNotFallBack(t *testing.T) {
	r, err := NewResolver(testSites(), "corporate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, err := r.Resolve("missing", "partners.example.com"); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("expected ErrSiteNotFound, got %v (%v)", err, s)
	}
}

func TestResolveByHostAndDefault(t *testing.T) {
	r, err := NewResolver(testSites(), "partner portal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := r.Resolve("", "WWW.example.com:443")
	if s.Name != "Corporate" {
		t.Errorf("expected host match, got %q", s.Name)
	}
	s, _ = r.Resolve("", "unknown.example.com")
	if s.Name != "Partner Portal" {
		t.Errorf("expected default site, got %q", s.Name)
	}
}

func TestLanguageFallback(t *testing.T) {
	r, _ := NewResolver(testSites(), "")
	s, _ := r.Resolve("corporate", "")
	if got := r.Language(s, "de"); got != "de" {
		t.Errorf("expected de, got %q", got)
	}
	if got := r.Language(s, "fr"); got != "en" {
		t.Errorf("expected fallback en, got %q", got)
	}
}

func TestResolverRejectsBadConfig(t *testing.T) {
	if _, err := NewResolver([]Site{{Name: "a"}, {Name: "A"}}, ""); err == nil {
		t.Errorf("expected duplicate error")
	}
	if _, err := NewResolver(testSites(), "nope"); err == nil {
		t.Errorf("expected unknown default error")
	}
	r, _ := NewResolver(nil, "")
	if _, err := r.Resolve("", ""); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("expected ErrSiteNotFound on empty resolver")
	}
}

func TestResolvedSiteIsACopy(t *testing.T) {
	r, _ := NewResolver(testSites(), "")
	s, _ := r.Resolve("corporate", "")
	s.DefaultLanguage = "xx"
	again, _ := r.Resolve("corporate", "")
	if again.DefaultLanguage != "en" {
		t.Errorf("resolver state must not be mutable through results")
	}
}
