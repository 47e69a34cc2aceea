package demosite

import (
	"fmt"
	"net/http"
)

// DemoSite is a simple HTTP server exposing pages with the GTM embedding
// styles and contact details a scanner run can be pointed at.
type DemoSite struct {
	cfg   Config
	pages map[string]PageDefinition
}

// NewDemoSite creates a new demo site instance.
func NewDemoSite(cfg Config) *DemoSite {
	pageMap := make(map[string]PageDefinition)
	for _, p := range GetAllPages() {
		pageMap[p.Path] = p
	}

	return &DemoSite{
		cfg:   cfg,
		pages: pageMap,
	}
}

// Handler returns the site's http.Handler.
func (s *DemoSite) Handler() http.Handler {
	mux := http.NewServeMux()
	for path := range s.pages {
		p := path // capture for closure
		mux.HandleFunc(p, s.pageHandler(p))
	}
	return mux
}

// Start starts the demo site.
func (s *DemoSite) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Demo site starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// pageHandler returns a handler for a specific page path.
func (s *DemoSite) pageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := s.pages[path]
		if !ok || (path == "/" && r.URL.Path != "/") {
			http.NotFound(w, r)
			return
		}

		contentType := page.ContentType
		if contentType == "" {
			contentType = "text/html"
		}
		w.Header().Set("Content-Type", contentType)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page.HTML))
	}
}
