package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// Route is a single registered route: an HTTP method, a compiled path
// pattern, the normalized handler, and route-scoped middleware.
type Route struct {
	method     string
	pattern    string
	regex      *regexp.Regexp
	paramNames []string
	handler    routeHandler
	middleware []any
}

// Method returns the HTTP method the route answers to.
func (r *Route) Method() string { return r.method }

// Pattern returns the path pattern the route was registered with.
func (r *Route) Pattern() string { return r.pattern }

// Use attaches middleware to the route. Accepted shapes are Middleware,
// func(HandlerFunc) HandlerFunc, Processor, or a string naming a container
// binding that resolves to one of those.
func (r *Route) Use(middleware ...any) *Route {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// match tests path against the route's pattern and extracts parameters.
// Placeholder names are zipped with capture groups positionally; a name with
// no corresponding capture is simply absent from the result.
func (r *Route) match(path string) (map[string]string, bool) {
	matches := r.regex.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}

	params := make(map[string]string, len(r.paramNames))
	for i, name := range r.paramNames {
		if i+1 < len(matches) {
			params[name] = matches[i+1]
		}
	}
	return params, true
}

// compilePattern turns a path pattern with {name} placeholders into an
// anchored regular expression. Each placeholder becomes a ([^/]+) capture
// group; everything else is matched literally. Matching is exact: no
// trailing-slash tolerance.
func compilePattern(pattern string) (*regexp.Regexp, []string, error) {
	var sb strings.Builder
	var names []string

	sb.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '{' {
			sb.WriteString(regexp.QuoteMeta(string(pattern[i])))
			continue
		}

		end := strings.IndexByte(pattern[i:], '}')
		if end < 0 {
			// Unclosed brace, treat as a literal.
			sb.WriteString(regexp.QuoteMeta(string(pattern[i])))
			continue
		}

		names = append(names, pattern[i+1:i+end])
		sb.WriteString("([^/]+)")
		i += end
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, nil, fmt.Errorf("router: compile pattern %q: %w", pattern, err)
	}
	return re, names, nil
}
