package director

import "github.com/ivlev/autocamera/internal/yamlfile"

// WriteRoute writes a route to a YAML file
func WriteRoute(route *Route, path string) error {
	return yamlfile.Write(path, route)
}

// ReadRoute reads a route from a YAML file
func ReadRoute(path string) (*Route, error) {
	return yamlfile.Read[Route](path)
}
