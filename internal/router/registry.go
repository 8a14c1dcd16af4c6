// Package router collects feature modules and mounts them under a shared
// base group so cmd/main.go stays free of per-feature route knowledge.
package router

import "github.com/gin-gonic/gin"

// Registry accumulates modules and group-level middleware, then mounts
// everything in one pass. Use and Add must happen before RegisterAll.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine, base string) *Registry {
	return &Registry{Engine: engine, API: engine.Group(base)}
}

// Use appends middleware applied to the base group ahead of every module.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
