package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"sportsassist/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var embedded []byte

var roles = []string{constant.RoleSuperAdmin, constant.RoleAdmin, constant.RoleStaff, constant.RoleParent}

var methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// Rule is the access rule of one route pattern. Public routes skip
// authentication; otherwise the caller's role must be listed in Roles.
type Rule struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Roles  []string `json:"roles"`
	Public bool     `json:"public"`
}

// Allows reports whether role may call the route. An empty role list admits
// every authenticated caller.
func (r Rule) Allows(role string) bool {
	return len(r.Roles) == 0 || slices.Contains(r.Roles, role)
}

// Table holds the route rules keyed by method and chi route pattern.
type Table struct {
	Disabled  bool   `json:"disabled"`
	Endpoints []Rule `json:"endpoints"`

	index map[string]Rule
}

func key(method, path string) string {
	return method + " " + path
}

// Lookup returns the rule registered for the route pattern.
func (t *Table) Lookup(method, path string) (Rule, bool) {
	rule, ok := t.index[key(method, path)]

	return rule, ok
}

// Load parses and checks a rule table.
func Load(data []byte) (*Table, error) {
	var table Table

	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	table.index = make(map[string]Rule, len(table.Endpoints))

	for _, rule := range table.Endpoints {
		if !slices.Contains(methods, rule.Method) {
			return nil, fmt.Errorf("unsupported method %q for %s", rule.Method, rule.Path)
		}

		for _, role := range rule.Roles {
			if !slices.Contains(roles, role) {
				return nil, fmt.Errorf("unknown role %q for %s %s", role, rule.Method, rule.Path)
			}
		}

		k := key(rule.Method, rule.Path)
		if _, exists := table.index[k]; exists {
			return nil, fmt.Errorf("duplicate rule for %s", k)
		}

		table.index[k] = rule
	}

	return &table, nil
}

// Get loads the embedded table. A broken table yields nil, which the RBAC
// middleware treats as deny-all.
func Get() *Table {
	table, err := Load(embedded)
	if err != nil {
		log.Error().Err(err).Msg("failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("loaded embedded permissions")

	return table
}
