package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Family is a vendor media type family.
type Family int

const (
	FamilyIntegration Family = iota
	FamilySelfService
)

func (f Family) mediaType(version string) string {
	if f == FamilySelfService {
		return "application/vnd.ellucian.v" + version + "+json"
	}
	return "application/vnd.hedtech.integration.v" + version + "+json"
}

var vendorMediaType = regexp.MustCompile(`^application/vnd\.(hedtech\.integration|ellucian)\.v(\d+(?:\.\d+){0,2})\+json$`)

// Version is one media type version a route answers to.
type Version struct {
	family    Family
	raw       string
	semver    *semver.Version
	isDefault bool
}

// Integration is an EEDM version such as "11.2.0" or "8".
func Integration(v string) Version {
	return Version{family: FamilyIntegration, raw: v, semver: semver.MustParse(v)}
}

// SelfService is a self-service version such as "1".
func SelfService(v string) Version {
	return Version{family: FamilySelfService, raw: v, semver: semver.MustParse(v)}
}

// Default marks the version that serves requests without a vendor media
// type.
func (v Version) Default() Version {
	v.isDefault = true
	return v
}

// MediaType is the media type written to X-Media-Type.
func (v Version) MediaType() string {
	return v.family.mediaType(v.raw)
}

// requestedVersion is a vendor media type parsed from Accept.
type requestedVersion struct {
	family     Family
	constraint *semver.Constraints
}

// parseAccept returns the vendor media types of an Accept header in order.
// Media ranges that are not versioned vendor types are ignored.
func parseAccept(accept string) []requestedVersion {
	var out []requestedVersion
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		m := vendorMediaType.FindStringSubmatch(strings.ToLower(mediaType))
		if m == nil {
			continue
		}

		family := FamilyIntegration
		if m[1] == "ellucian" {
			family = FamilySelfService
		}

		c, err := versionConstraint(m[2])
		if err != nil {
			continue
		}
		out = append(out, requestedVersion{family: family, constraint: c})
	}
	return out
}

// versionConstraint matches every version sharing the requested prefix:
// "11" is 11.x.x, "11.1" is 11.1.x and "11.1.0" is exact.
func versionConstraint(v string) (*semver.Constraints, error) {
	switch strings.Count(v, ".") {
	case 0, 1:
		return semver.NewConstraint(v + ".x")
	default:
		return semver.NewConstraint("= " + v)
	}
}

type versionHandler struct {
	version Version
	handler echo.HandlerFunc
}

// versionedRoute is every version registered for one method and path.
type versionedRoute struct {
	key      string
	handlers []versionHandler
}

func (r *versionedRoute) add(v Version, h echo.HandlerFunc) {
	for _, existing := range r.handlers {
		if existing.version.family == v.family && existing.version.semver.Equal(v.semver) {
			panic(fmt.Sprintf("router: version %s registered twice for %s", v.MediaType(), r.key))
		}
		if v.isDefault && existing.version.isDefault {
			panic(fmt.Sprintf("router: two default versions for %s", r.key))
		}
	}
	r.handlers = append(r.handlers, versionHandler{version: v, handler: h})
}

// match returns the handler for an Accept header, or false when the
// requested version is not served.
func (r *versionedRoute) match(accept string) (versionHandler, bool) {
	requested := parseAccept(accept)

	if len(requested) == 0 {
		for _, vh := range r.handlers {
			if vh.version.isDefault {
				return vh, true
			}
		}
		if len(r.handlers) == 1 {
			return r.handlers[0], true
		}
		return versionHandler{}, false
	}

	for _, req := range requested {
		var best *versionHandler
		for i := range r.handlers {
			vh := &r.handlers[i]
			if vh.version.family != req.family || !req.constraint.Check(vh.version.semver) {
				continue
			}
			if best == nil || vh.version.semver.GreaterThan(best.version.semver) {
				best = vh
			}
		}
		if best != nil {
			return *best, true
		}
	}
	return versionHandler{}, false
}

func (r *versionedRoute) serve(c echo.Context) error {
	vh, ok := r.match(c.Request().Header.Get(echo.HeaderAccept))
	if !ok {
		middleware.GetLogger(c).Warn().
			Str("accept", c.Request().Header.Get(echo.HeaderAccept)).
			Str("route", r.key).
			Msg("no route version matches the requested media type")
		return errs.NewNotAcceptableError("The requested media type version is not supported by this resource.")
	}

	mediaType := vh.version.MediaType()
	h := c.Response().Header()
	h.Set(middleware.HeaderMediaType, mediaType)
	h.Set(echo.HeaderContentType, mediaType)

	return vh.handler(c)
}

// Dispatcher registers one echo route per method and path and picks the
// handler by the Accept header's vendor media type.
type Dispatcher struct {
	group  *echo.Group
	routes map[string]*versionedRoute
}

func NewDispatcher(g *echo.Group) *Dispatcher {
	return &Dispatcher{group: g, routes: map[string]*versionedRoute{}}
}

// Handle adds version v of method and path.
func (d *Dispatcher) Handle(method, path string, v Version, h echo.HandlerFunc) {
	key := method + " " + path
	r, ok := d.routes[key]
	if !ok {
		r = &versionedRoute{key: key}
		d.routes[key] = r
		d.group.Add(method, path, r.serve)
	}
	r.add(v, h)
}

// GET is Handle for http.MethodGet.
func (d *Dispatcher) GET(path string, v Version, h echo.HandlerFunc) {
	d.Handle(echo.GET, path, v, h)
}

func (d *Dispatcher) POST(path string, v Version, h echo.HandlerFunc) {
	d.Handle(echo.POST, path, v, h)
}

func (d *Dispatcher) PUT(path string, v Version, h echo.HandlerFunc) {
	d.Handle(echo.PUT, path, v, h)
}

func (d *Dispatcher) DELETE(path string, v Version, h echo.HandlerFunc) {
	d.Handle(echo.DELETE, path, v, h)
}
