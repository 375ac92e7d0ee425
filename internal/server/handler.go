package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/KaramelBytes/happydash/internal/binding"
	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/controls"
	"github.com/KaramelBytes/happydash/internal/render"
)

// queryAliases are the short query parameter names accepted next to the
// canonical field names.
var queryAliases = map[controls.Field]string{
	controls.CountryCount: "count",
	controls.ColorScale:   "color",
}

func (s *Server) controls(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog)
}

// stateFromQuery applies the request's query parameters to the defaults.
func (s *Server) stateFromQuery(c *gin.Context) (controls.State, error) {
	p, err := controls.ParsePatch(func(f controls.Field) (string, bool) {
		if v, ok := c.GetQuery(string(f)); ok {
			return v, true
		}
		if alias, ok := queryAliases[f]; ok {
			return c.GetQuery(alias)
		}
		return "", false
	})
	if err != nil {
		return controls.State{}, err
	}
	return s.defaults.Apply(p), nil
}

// request resolves the :view parameter and the control state. On failure
// the response is already written.
func (s *Server) request(c *gin.Context) (binding.Binding, controls.State, bool) {
	id, ok := chartspec.ParseView(c.Param("view"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown view"})
		return binding.Binding{}, controls.State{}, false
	}
	st, err := s.stateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return binding.Binding{}, controls.State{}, false
	}
	b, _ := binding.Lookup(s.bindings, id)
	return b, st, true
}

// compute evaluates one view. Invalid control values produce the view's
// empty chart alongside the error.
func (s *Server) compute(b binding.Binding, st controls.State) (*chartspec.Chart, error) {
	chart, err := binding.Compute(b, s.table, st)
	if err != nil {
		s.log.WithField("view", b.View).WithError(err).Warn("view failed; showing empty result")
	}
	return chart, err
}

func (s *Server) view(c *gin.Context) {
	b, st, ok := s.request(c)
	if !ok {
		return
	}
	chart, _ := s.compute(b, st)
	c.JSON(http.StatusOK, chart)
}

func (s *Server) viewAsset(c *gin.Context) {
	switch c.Param("format") {
	case "png":
		s.viewPNG(c)
	case "geojson":
		s.viewGeoJSON(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown format"})
	}
}

func (s *Server) viewPNG(c *gin.Context) {
	b, st, ok := s.request(c)
	if !ok {
		return
	}
	chart, viewErr := s.compute(b, st)
	if viewErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": viewErr.Error()})
		return
	}
	var buf bytes.Buffer
	err := render.PNG(&buf, chart, s.png)
	switch {
	case errors.Is(err, render.ErrUnsupportedView):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, render.ErrEmptyChart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.log.WithField("view", chart.View).WithError(err).Error("png render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) viewGeoJSON(c *gin.Context) {
	if c.Param("view") != string(chartspec.Choropleth) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "geojson is only available for the choropleth"})
		return
	}
	if s.world == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no map geometry configured"})
		return
	}
	b, st, ok := s.request(c)
	if !ok {
		return
	}
	chart, viewErr := s.compute(b, st)
	if viewErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": viewErr.Error()})
		return
	}
	fc, unresolved, err := s.world.Fill(chart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(unresolved) > 0 {
		s.log.WithField("countries", unresolved).Debug("countries without geometry left unfilled")
	}
	c.Header("X-Unresolved-Countries", strconv.Itoa(len(unresolved)))
	c.JSON(http.StatusOK, fc)
}
