package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"riftreplay/internal/analysis"
	"riftreplay/internal/timeline"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"engines": s.engines.cache.Len(),
	})
}

func (s *Server) handleAnalyses(c *gin.Context) {
	list, err := s.src.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if list == nil {
		list = []analysis.Summary{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleSearch(c *gin.Context) {
	list, err := analysis.Search(c.Request.Context(), s.src, c.Query("q"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if list == nil {
		list = []analysis.Summary{}
	}
	c.JSON(http.StatusOK, list)
}

type analyzeBody struct {
	RiotID     string `json:"riot_id" binding:"required"`
	MatchCount int    `json:"match_count"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	an, ok := s.src.(analysis.Analyzer)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "analysis source cannot run analyses"})
		return
	}
	var body analyzeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := an.Analyze(c.Request.Context(), body.RiotID, body.MatchCount); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"status":   "started",
		"riot_id":  body.RiotID,
		"filename": analysis.Filename(body.RiotID),
	})
}

// engine loads the engine named by the route, writing the error response
// itself on failure
func (s *Server) engine(c *gin.Context) (*timeline.Engine, bool) {
	eng, err := s.engines.Get(c.Request.Context(), c.Param("id"), c.Param("match"))
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return eng, true
}

func (s *Server) handleFrame(c *gin.Context) {
	t, ok := queryTime(c)
	if !ok {
		return
	}
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, eng.Frame(t, s.reference()))
}

// handleEvents returns the normalized event log in time order
func (s *Server) handleEvents(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, eng.Events())
}

func (s *Server) handleGold(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, eng.GoldDifferentialSeries())
}

func (s *Server) handleWards(c *gin.Context) {
	t, ok := queryTime(c)
	if !ok {
		return
	}
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	wards := eng.ActiveWards(t)
	if wards == nil {
		wards = []timeline.WardInstance{}
	}
	c.JSON(http.StatusOK, wards)
}

func (s *Server) handleTowers(c *gin.Context) {
	t, ok := queryTime(c)
	if !ok {
		return
	}
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, eng.ActiveTowers(t))
}

type inventoryResponse struct {
	CombatantID string              `json:"combatantId"`
	T           float64             `json:"t"`
	Items       []timeline.ItemSlot `json:"items"`
}

func (s *Server) handleInventory(c *gin.Context) {
	t, ok := queryTime(c)
	if !ok {
		return
	}
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	id := c.Param("combatant")
	items, found := eng.LiveInventory(id, t)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown combatant " + id})
		return
	}

	ref := s.reference()
	resp := inventoryResponse{CombatantID: id, T: t, Items: make([]timeline.ItemSlot, 0, len(items))}
	for _, item := range items {
		a := timeline.PlaceholderItem(item)
		if ref != nil {
			a = ref.Item(item)
		}
		resp.Items = append(resp.Items, timeline.ItemSlot{ID: item, Asset: a})
	}
	c.JSON(http.StatusOK, resp)
}
