package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/incident-desk/backend/internal/config"
	"github.com/incident-desk/backend/internal/registry"
	"github.com/incident-desk/backend/internal/service"
)

type RouteKind int

const (
	RouteNotFound RouteKind = iota
	RouteHealth
	RouteInvokeLLM
	RouteFunction
	RouteCollection
	RouteItem
)

// Route - prefix를 제거한 경로의 분류 결과
type Route struct {
	Kind RouteKind
	// Function is the action name for RouteFunction.
	Function string
	Entity   *registry.Entity
	ID       string
	// NotFound is the error message for RouteNotFound.
	NotFound string
}

// ParseRoute classifies a path with the API prefix already stripped.
//
//	""  | index            → health
//	ai/invoke-llm          → AI passthrough
//	functions/<name>       → named action
//	<entity>[/<id>]        → CRUD
func ParseRoute(reg *registry.Registry, path string) Route {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}

	if len(segs) == 0 || (len(segs) == 1 && segs[0] == "index") {
		return Route{Kind: RouteHealth}
	}

	switch segs[0] {
	case "ai":
		if len(segs) == 2 && segs[1] == "invoke-llm" {
			return Route{Kind: RouteInvokeLLM}
		}
		return Route{Kind: RouteNotFound, NotFound: "Unknown route"}
	case "functions":
		switch len(segs) {
		case 1:
			return Route{Kind: RouteNotFound, NotFound: "Unknown function"}
		case 2:
			return Route{Kind: RouteFunction, Function: segs[1]}
		}
		return Route{Kind: RouteNotFound, NotFound: "Unknown route"}
	}

	entity, ok := reg.Lookup(segs[0])
	if !ok {
		return Route{Kind: RouteNotFound, NotFound: "Unknown route"}
	}
	switch len(segs) {
	case 1:
		return Route{Kind: RouteCollection, Entity: entity}
	case 2:
		return Route{Kind: RouteItem, Entity: entity, ID: segs[1]}
	}
	return Route{Kind: RouteNotFound, NotFound: "Unknown route"}
}

// Services - router가 사용하는 서비스 묶음
type Services struct {
	Registry *registry.Registry
	Records  *service.RecordService
	Assist   *service.AssistService
	Auth     *service.AuthResolver
}

// NewRouter builds the gin engine. Every path under the API prefix goes
// through one dispatcher that classifies it with ParseRoute.
func NewRouter(cfg config.ServerConfig, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(recoverInternal))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(AuthMiddleware(svc.Auth))

	r.GET("/ping", Ping)
	r.GET("/openapi.json", OpenAPIDoc)

	d := &dispatcher{
		prefix:   cfg.APIPrefix,
		registry: svc.Registry,
		records:  NewRecordHandler(svc.Records),
		assist:   NewAssistHandler(svc.Assist),
	}
	if cfg.APIPrefix == "" {
		r.NoRoute(d.Dispatch)
	} else {
		r.Any(cfg.APIPrefix, d.Dispatch)
		r.Any(cfg.APIPrefix+"/*path", d.Dispatch)
		r.NoRoute(func(c *gin.Context) {
			writeNotFound(c, "Unknown route")
		})
	}
	return r
}

type dispatcher struct {
	prefix   string
	registry *registry.Registry
	records  *RecordHandler
	assist   *AssistHandler
}

func (d *dispatcher) Dispatch(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, d.prefix)
	route := ParseRoute(d.registry, path)
	method := c.Request.Method

	switch route.Kind {
	case RouteHealth:
		Health(c)
	case RouteInvokeLLM:
		if method != http.MethodPost {
			methodNotAllowed(c, http.MethodPost)
			return
		}
		d.assist.InvokeLLM(c)
	case RouteFunction:
		if method != http.MethodPost {
			methodNotAllowed(c, http.MethodPost)
			return
		}
		d.assist.RunFunction(c, route.Function)
	case RouteCollection:
		e := route.Entity
		switch {
		case method == http.MethodGet && e.Allows(registry.OpList):
			d.records.List(c, e)
		case method == http.MethodPost && e.Allows(registry.OpCreate):
			d.records.Create(c, e)
		default:
			methodNotAllowed(c, e.CollectionMethods()...)
		}
	case RouteItem:
		e := route.Entity
		switch {
		case method == http.MethodGet && e.Allows(registry.OpGet):
			d.records.Get(c, e, route.ID)
		case (method == http.MethodPut || method == http.MethodPatch) && e.Allows(registry.OpUpdate):
			d.records.Update(c, e, route.ID)
		case method == http.MethodDelete && e.Allows(registry.OpDelete):
			d.records.Delete(c, e, route.ID)
		default:
			methodNotAllowed(c, e.ItemMethods()...)
		}
	default:
		writeNotFound(c, route.NotFound)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	cfg.AllowHeaders = []string{"Authorization", "Content-Type"}
	cfg.ExposeHeaders = []string{"Allow"}

	var explicit []string
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		explicit = append(explicit, origin)
	}
	if len(explicit) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = explicit
	return cfg
}
