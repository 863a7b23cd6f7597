package routing

import "strings"

// Match resolves a concrete path against the route tables. It returns the
// matched route and the values bound to :param segments, or nil when no
// route matches (the caller treats that as the not-found screen). Query
// strings are ignored for matching purposes.
func Match(path string) (*Route, map[string]string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	for _, table := range [][]Route{AuthRoutes, DashboardRoutes} {
		for i := range table {
			if params, ok := matchPattern(table[i].Path, path); ok {
				return &table[i], params
			}
		}
	}
	return nil, nil
}

// matchPattern compares a pattern like /clients/edit/:id against a path
// segment by segment. A :param segment matches any single non-empty
// segment and records its value.
func matchPattern(pattern, path string) (map[string]string, bool) {
	if pattern == path {
		return nil, true
	}

	pp := splitPath(pattern)
	sp := splitPath(path)
	if len(pp) != len(sp) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			if sp[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = sp[i]
			continue
		}
		if seg != sp[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
