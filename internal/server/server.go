// Package server exposes the dashboard over HTTP and websockets.
package server

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KaramelBytes/happydash/internal/binding"
	"github.com/KaramelBytes/happydash/internal/controls"
	"github.com/KaramelBytes/happydash/internal/dataset"
	"github.com/KaramelBytes/happydash/internal/geo"
	"github.com/KaramelBytes/happydash/internal/render"
)

//go:embed templates/index.html
var assets embed.FS

// Config wires a Server. World may be nil when no map geometry is configured.
type Config struct {
	Table    *dataset.Table
	World    *geo.World
	Defaults controls.State
	PNG      render.Options
	Log      logrus.FieldLogger
}

// Server serves one immutable table to any number of clients.
type Server struct {
	table    *dataset.Table
	world    *geo.World
	defaults controls.State
	catalog  controls.Catalog
	bindings []binding.Binding
	png      render.Options
	hub      *Hub
	log      logrus.FieldLogger
}

func New(cfg Config) *Server {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		table:    cfg.Table,
		world:    cfg.World,
		defaults: cfg.Defaults,
		catalog:  controls.NewCatalog(cfg.Table, cfg.Defaults),
		bindings: binding.Default,
		png:      cfg.PNG,
		hub:      NewHub(),
		log:      log,
	}
}

// Hub returns the registry of live websocket sessions.
func (s *Server) Hub() *Hub { return s.hub }

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.log))
	router.SetHTMLTemplate(template.Must(template.ParseFS(assets, "templates/index.html")))

	router.GET("/", s.index)
	router.GET("/health", s.health)
	router.GET("/ws", s.websocket)
	s.RegisterRoutes(router.Group("/api"))
	return router
}

// RegisterRoutes mounts the JSON and image API under rg.
func (s *Server) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/controls", s.controls)             // GET /api/controls
	rg.GET("/views/:view", s.view)              // GET /api/views/bar?region=..
	rg.GET("/views/:view/:format", s.viewAsset) // png or geojson
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"records":  s.table.Len(),
		"regions":  len(s.table.Regions()),
		"geo":      s.world != nil,
		"sessions": s.hub.Count(),
	})
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":   "World Happiness Dashboard",
		"Catalog": s.catalog,
	})
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request")
	}
}
