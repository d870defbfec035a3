package router

// RouteExistsError is returned by Add when the route's name is taken.
type RouteExistsError struct {
	Name string
}

func (e *RouteExistsError) Error() string {
	return "route already exists: " + e.Name
}

// Is implements matching for errors.Is.
func (e *RouteExistsError) Is(target error) bool {
	_, ok := target.(*RouteExistsError)
	return ok
}

// RouteNotFoundError is returned by Link for an unknown route name.
type RouteNotFoundError struct {
	Name string
}

func (e *RouteNotFoundError) Error() string {
	return "route not found: " + e.Name
}

// Is implements matching for errors.Is.
func (e *RouteNotFoundError) Is(target error) bool {
	_, ok := target.(*RouteNotFoundError)
	return ok
}
