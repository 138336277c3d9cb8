package api

import (
	"fmt"
	"strings"
)

// tabOwners maps pages without their own tab to the tab that links to them.
var tabOwners = map[string]string{
	"/splits": "/train",
}

func isActiveTemplateRoute(currentPath string, route string) bool {
	path := currentPath
	if cut := strings.IndexAny(path, "?#"); cut >= 0 {
		path = path[:cut]
	}
	if path = strings.TrimRight(path, "/"); path == "" {
		path = "/"
	}
	if owner, ok := tabOwners[path]; ok {
		path = owner
	}

	if route == "/" {
		return path == "/"
	}
	return path == route || strings.HasPrefix(path, route+"/")
}

// templateDict builds a map from alternating keys and values so a template can
// hand several values to a nested template.
func templateDict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 == 1 {
		return nil, fmt.Errorf("dict: odd number of arguments (%d)", len(pairs))
	}
	values := make(map[string]any, len(pairs)/2)
	for len(pairs) > 0 {
		key, ok := pairs[0].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is %T, not string", pairs[0], pairs[0])
		}
		values[key] = pairs[1]
		pairs = pairs[2:]
	}
	return values, nil
}
