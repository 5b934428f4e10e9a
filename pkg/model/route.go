package model

// RouteMeta is the SEO metadata a route is expected to carry.
type RouteMeta struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// RouteConfig describes one route of the web app: its component, auth
// requirements and metadata. Loaded once, never mutated.
type RouteConfig struct {
	Path         string     `json:"path" yaml:"path"`
	Component    string     `json:"component" yaml:"component"`
	RequiresAuth bool       `json:"requiresAuth" yaml:"requiresAuth"`
	AllowedRoles []string   `json:"allowedRoles,omitempty" yaml:"allowedRoles,omitempty"`
	Meta         *RouteMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}
