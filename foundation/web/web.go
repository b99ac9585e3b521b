// Package web is a thin layer over gin that lets handlers return errors and
// compose middleware.
package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles a single request. A returned error means the response
// could not be written the normal way and must be logged.
type Handler func(c *Context) error

// Middleware wraps a Handler with additional behaviour.
type Middleware func(Handler) Handler

// App is the entrypoint into the application. It embeds gin so plain gin
// handlers can still be registered directly.
type App struct {
	*gin.Engine
	log *log.Logger
	mw  []Middleware
}

// NewApp creates an App with the given app-wide middleware.
func NewApp(log *log.Logger, mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &App{
		Engine: engine,
		log:    log,
		mw:     mw,
	}
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	// Route specific middleware runs inside the app-wide one.
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := &Context{
			Context: gc,
			Ctx:     gc.Request.Context(),
		}

		if err := handler(c); err != nil {
			a.log.Printf("%s %s: %v", method, gc.Request.URL.Path, err)
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodDelete, path, handler, mw...)
}

// wrapMiddleware applies mw so the first element is the outermost layer.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}

	return handler
}
