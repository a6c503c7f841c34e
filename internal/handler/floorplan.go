package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
	"github.com/shouni/gemini-floorplan-kit/pkg/planner"
	"github.com/shouni/gemini-floorplan-kit/pkg/session"
)

// FloorPlanHandler はフォーム操作と生成リクエストを受け付ける HTTP ハンドラーです。
type FloorPlanHandler struct {
	session *session.Session
}

// NewFloorPlanHandler は Session を注入して FloorPlanHandler を生成します。
func NewFloorPlanHandler(s *session.Session) *FloorPlanHandler {
	return &FloorPlanHandler{session: s}
}

// RegisterRoutes は /api/v1 配下にルートを登録します。
func (h *FloorPlanHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1")
	{
		api.GET("/form", h.GetForm)
		api.PUT("/form/plot-size", h.SetPlotSize)
		api.POST("/form/rooms/:room/increment", h.IncrementRoom)
		api.POST("/form/rooms/:room/decrement", h.DecrementRoom)
		api.PUT("/form/features/:feature", h.SetFeature)
		api.PUT("/form/units", h.SwitchUnits)

		api.POST("/generate", h.Generate)
		api.GET("/results", h.GetResults)
		api.GET("/results/:index", h.GetResultImage)
	}
}

type labeledValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value any    `json:"value"`
}

type formView struct {
	Requirements domain.Requirements `json:"requirements"`
	Units        domain.Units        `json:"units"`
	Bounds       planner.Bounds      `json:"bounds"`
	AreaSuffix   string              `json:"areaSuffix"`
	Rooms        []labeledValue      `json:"rooms"`
	Features     []labeledValue      `json:"features"`
}

type imageView struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	MimeType string `json:"mimeType"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Src      string `json:"src"`
}

type panelView struct {
	State         session.State `json:"state"`
	SubmissionID  string        `json:"submissionId,omitempty"`
	StatusMessage string        `json:"statusMessage,omitempty"`
	Error         string        `json:"error,omitempty"`
	Images        []imageView   `json:"images"`
}

func (h *FloorPlanHandler) formView() formView {
	snap := h.session.Form().Snapshot()
	req := snap.Requirements

	v := formView{
		Requirements: req,
		Units:        snap.Units,
		Bounds:       planner.SliderBounds(snap.Units),
		AreaSuffix:   snap.Units.AreaSuffix(),
	}
	for _, r := range domain.Rooms {
		v.Rooms = append(v.Rooms, labeledValue{Key: string(r), Label: r.Label(), Value: *req.Count(r)})
	}
	for _, f := range domain.Features {
		v.Features = append(v.Features, labeledValue{Key: string(f), Label: f.Label(), Value: *req.Flag(f)})
	}
	return v
}

// GetForm は GET /api/v1/form を処理します。
func (h *FloorPlanHandler) GetForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.formView())
}

// SetPlotSize は PUT /api/v1/form/plot-size を処理します。
func (h *FloorPlanHandler) SetPlotSize(c *gin.Context) {
	var body struct {
		PlotSize *int `json:"plotSize" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	h.session.Form().SetPlotSize(*body.PlotSize)
	c.JSON(http.StatusOK, h.formView())
}

// IncrementRoom は POST /api/v1/form/rooms/:room/increment を処理します。
func (h *FloorPlanHandler) IncrementRoom(c *gin.Context) {
	h.adjustRoom(c, h.session.Form().Increment)
}

// DecrementRoom は POST /api/v1/form/rooms/:room/decrement を処理します。
func (h *FloorPlanHandler) DecrementRoom(c *gin.Context) {
	h.adjustRoom(c, h.session.Form().Decrement)
}

func (h *FloorPlanHandler) adjustRoom(c *gin.Context, fn func(domain.Room) (int, error)) {
	room, err := domain.ParseRoom(c.Param("room"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if _, err := fn(room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.formView())
}

// SetFeature は PUT /api/v1/form/features/:feature を処理します。
func (h *FloorPlanHandler) SetFeature(c *gin.Context) {
	feature, err := domain.ParseFeature(c.Param("feature"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	var body struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.session.Form().SetFeature(feature, *body.Enabled); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.formView())
}

// SwitchUnits は PUT /api/v1/form/units を処理します。
func (h *FloorPlanHandler) SwitchUnits(c *gin.Context) {
	var body struct {
		Units string `json:"units" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	units, err := domain.ParseUnits(body.Units)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.session.Form().SwitchUnits(units); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.formView())
}

// Generate は POST /api/v1/generate を処理します。
// 生成はバックグラウンドで実行し、受け付けた時点で 202 を返します。生成中は 409 です。
func (h *FloorPlanHandler) Generate(c *gin.Context) {
	id, _, err := h.session.Start(c.Request.Context())
	if errors.Is(err, session.ErrSubmissionInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "Generation already in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"submissionId": id})
}

// GetResults は GET /api/v1/results を処理し、結果パネルの状態を返します。
func (h *FloorPlanHandler) GetResults(c *gin.Context) {
	p := h.session.Panel()
	v := panelView{
		State:         p.State,
		SubmissionID:  p.SubmissionID,
		StatusMessage: p.StatusMessage,
		Error:         p.Error,
		Images:        make([]imageView, 0, len(p.Images)),
	}
	for i, img := range p.Images {
		v.Images = append(v.Images, imageView{
			Index:    i,
			Label:    "Option " + strconv.Itoa(i+1),
			MimeType: img.MimeType,
			Width:    img.Width,
			Height:   img.Height,
			Src:      "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
		})
	}
	c.JSON(http.StatusOK, v)
}

// GetResultImage は GET /api/v1/results/:index を処理し、画像のバイト列をそのまま返します。
func (h *FloorPlanHandler) GetResultImage(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	images := h.session.Panel().Images
	if err != nil || idx < 0 || idx >= len(images) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	img := images[idx]
	c.Data(http.StatusOK, img.MimeType, img.Data)
}
