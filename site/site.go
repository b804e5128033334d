// Package site resolves the site and language of a request from a read-only
// table built at startup.
package site

import (
	"errors"
	"strings"

	"github.com/gosimple/slug"
)

// ErrSiteNotFound is returned for an unknown site name, or when nothing
// matches and no default is set.
var ErrSiteNotFound = errors.New("site not found")

// Site describes one configured site.
type Site struct {
	Name            string   `json:"name" mapstructure:"name" validate:"required"`
	Hosts           []string `json:"hosts" mapstructure:"hosts"`
	Languages       []string `json:"languages" mapstructure:"languages"`
	DefaultLanguage string   `json:"default_language" mapstructure:"default_language"`
	RootPath        string   `json:"root_path" mapstructure:"root_path"`
}

// Supports reports whether lang is one of the site's languages.
func (s *Site) Supports(lang string) bool {
	for _, l := range s.Languages {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return strings.EqualFold(s.DefaultLanguage, lang)
}

// Resolver looks up sites by name or host. It is immutable after NewResolver.
type Resolver struct {
	sites       []Site
	byName      map[string]int
	byHost      map[string]int
	defaultSite int
}

// NewResolver builds a resolver. defaultName selects the fallback site; an
// empty name uses the first site.
func NewResolver(sites []Site, defaultName string) (*Resolver, error) {
	r := &Resolver{
		sites:       make([]Site, len(sites)),
		byName:      make(map[string]int, len(sites)),
		byHost:      make(map[string]int),
		defaultSite: -1,
	}
	copy(r.sites, sites)
	for i, s := range r.sites {
		key := slug.Make(s.Name)
		if key == "" {
			return nil, errors.New("site name is empty")
		}
		if _, dup := r.byName[key]; dup {
			return nil, errors.New("duplicate site " + s.Name)
		}
		r.byName[key] = i
		for _, h := range s.Hosts {
			r.byHost[normalizeHost(h)] = i
		}
		if s.DefaultLanguage == "" && len(s.Languages) > 0 {
			r.sites[i].DefaultLanguage = s.Languages[0]
		}
	}
	if len(r.sites) > 0 {
		r.defaultSite = 0
	}
	if defaultName != "" {
		i, ok := r.byName[slug.Make(defaultName)]
		if !ok {
			return nil, errors.New("default site " + defaultName + " is not configured")
		}
		r.defaultSite = i
	}
	return r, nil
}

// Resolve returns the site named name, else the site serving host, else the
// default site. A non-empty name that matches no site is an error; it never
// falls back to host or default.
func (r *Resolver) Resolve(name, host string) (*Site, error) {
	if name != "" {
		if i, ok := r.byName[slug.Make(name)]; ok {
			return r.site(i), nil
		}
		return nil, ErrSiteNotFound
	}
	if host != "" {
		if i, ok := r.byHost[normalizeHost(host)]; ok {
			return r.site(i), nil
		}
	}
	if r.defaultSite < 0 {
		return nil, ErrSiteNotFound
	}
	return r.site(r.defaultSite), nil
}

// Language returns requested when the site supports it, else the site default.
func (r *Resolver) Language(s *Site, requested string) string {
	if requested != "" && s.Supports(requested) {
		return requested
	}
	if s.DefaultLanguage != "" {
		return s.DefaultLanguage
	}
	return "en"
}

// Sites returns a copy of the configured sites.
func (r *Resolver) Sites() []Site {
	out := make([]Site, len(r.sites))
	copy(out, r.sites)
	return out
}

func (r *Resolver) site(i int) *Site {
	s := r.sites[i]
	return &s
}

func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if i := strings.LastIndexByte(h, ':'); i >= 0 && !strings.Contains(h[i:], "]") {
		h = h[:i]
	}
	return h
}
