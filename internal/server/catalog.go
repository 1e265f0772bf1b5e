package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"visub/internal/style"
	"visub/internal/transcriber"
)

// Catalog endpoints return the option lists web UIs need to build style
// pickers. Values are the machine names the upload config accepts; labels are
// what the UI shows.

func (s *Server) listModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": transcriber.AllModels()})
}

func (s *Server) listLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": transcriber.AllLanguages()})
}

func (s *Server) listPositions(c *gin.Context) {
	positions := style.AllPositions()
	out := make([]gin.H, 0, len(positions))
	for _, p := range positions {
		out = append(out, gin.H{"value": string(p), "label": label(string(p))})
	}
	c.JSON(http.StatusOK, gin.H{"positions": out})
}

func (s *Server) listFonts(c *gin.Context) {
	fonts := style.AllFontFamilies()
	out := make([]gin.H, 0, len(fonts))
	for _, f := range fonts {
		out = append(out, gin.H{"value": string(f), "label": f.Name(), "category": "viral"})
	}
	c.JSON(http.StatusOK, gin.H{"fonts": out})
}

func (s *Server) listEffects(c *gin.Context) {
	effects := style.AllTextEffects()
	out := make([]gin.H, 0, len(effects))
	for _, e := range effects {
		out = append(out, gin.H{"value": string(e), "label": label(string(e))})
	}
	c.JSON(http.StatusOK, gin.H{"effects": out})
}

func (s *Server) listAnimations(c *gin.Context) {
	animations := style.AllAnimations()
	out := make([]gin.H, 0, len(animations))
	for _, a := range animations {
		out = append(out, gin.H{"value": string(a), "label": label(string(a))})
	}
	c.JSON(http.StatusOK, gin.H{"animations": out})
}

// listPresets keys the response by preset name; each entry is the preview
// card with display name, description, and the attributes pickers show.
func (s *Server) listPresets(c *gin.Context) {
	out := make(map[string]style.PresetPreview)
	for _, p := range style.Presets() {
		out[p.Name] = p.Preview()
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

// listColors returns the named palette with both representations: the ASS
// value configs want and the hex value color pickers want.
func (s *Server) listColors(c *gin.Context) {
	colors := style.NamedColors()
	out := make([]gin.H, 0, len(colors))
	for _, nc := range colors {
		out = append(out, gin.H{
			"value": style.ToASSColor(nc.Hex),
			"label": label(nc.Name),
			"hex":   nc.Hex,
		})
	}
	c.JSON(http.StatusOK, gin.H{"colors": out})
}

// validateConfig checks a subtitle config without creating a job, so UIs can
// surface problems before upload.
func (s *Server) validateConfig(c *gin.Context) {
	var cfg style.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg.Validate())
}

// label converts a snake_case value for display.
func label(value string) string {
	words := strings.Split(value, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
