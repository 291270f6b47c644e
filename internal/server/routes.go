package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tapware/touchlink/internal/protocol"
)

func (s *Server) getLink(c *gin.Context) {
	c.JSON(http.StatusOK, s.bridge.Link().Snapshot())
}

func (s *Server) getGpio(c *gin.Context) {
	c.JSON(http.StatusOK, s.bridge.GPIO().Snapshot())
}

func (s *Server) postGpioRefresh(c *gin.Context) {
	s.send(c, protocol.GpioGetAll{})
}

type gpioSetRequest struct {
	On      *bool `json:"on"`
	Bitmask *byte `json:"bitmask"`
}

// gpioChannel resolves the :channel param: a digit addresses one channel,
// "all" addresses every channel with a bitmask payload.
func gpioChannel(c *gin.Context, req gpioSetRequest) (index, state byte, ok bool) {
	raw := c.Param("channel")
	if raw == "all" {
		if req.Bitmask == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bitmask required for channel 'all'"})
			return 0, 0, false
		}
		return protocol.GpioAll, *req.Bitmask, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 7 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel must be 0-7 or 'all'"})
		return 0, 0, false
	}
	if req.On == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "on required for a single channel"})
		return 0, 0, false
	}
	if *req.On {
		state = 1
	}
	return byte(n), state, true
}

func (s *Server) postLed(c *gin.Context) {
	var req gpioSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	index, state, ok := gpioChannel(c, req)
	if !ok {
		return
	}
	s.send(c, protocol.GpioSetLed{Index: index, State: state})
}

func (s *Server) postRelay(c *gin.Context) {
	var req gpioSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	index, state, ok := gpioChannel(c, req)
	if !ok {
		return
	}
	s.send(c, protocol.GpioSetRelay{Index: index, State: state})
}

type textRequest struct {
	Text      string `json:"text" binding:"required"`
	Modifiers byte   `json:"modifiers"`
}

func (s *Server) postText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.send(c, protocol.KeyboardType{
		Modifiers: protocol.Modifier(req.Modifiers),
		Text:      req.Text,
	})
}

type keyRequest struct {
	Keycode   byte   `json:"keycode" binding:"required"`
	Modifiers byte   `json:"modifiers"`
	Action    string `json:"action"`
}

func parseAction(raw string) (protocol.Action, bool) {
	switch raw {
	case "", "tap":
		return protocol.ActionTap, true
	case "press":
		return protocol.ActionPress, true
	case "release":
		return protocol.ActionRelease, true
	default:
		return 0, false
	}
}

func (s *Server) postKey(c *gin.Context) {
	var req keyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	action, ok := parseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be tap, press or release"})
		return
	}
	s.send(c, protocol.KeyboardKey{
		Modifiers: protocol.Modifier(req.Modifiers),
		Keycode:   req.Keycode,
		Action:    action,
	})
}

type comboRequest struct {
	Modifiers byte   `json:"modifiers"`
	Keycodes  []byte `json:"keycodes" binding:"required"`
}

func (s *Server) postCombo(c *gin.Context) {
	var req comboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.send(c, protocol.KeyboardCombo{
		Modifiers: protocol.Modifier(req.Modifiers),
		Keycodes:  req.Keycodes,
	})
}

type mediaRequest struct {
	Usage  uint16 `json:"usage" binding:"required"`
	Action string `json:"action"`
}

func (s *Server) postMedia(c *gin.Context) {
	var req mediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	action, ok := parseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be tap, press or release"})
		return
	}
	s.send(c, protocol.MediaKey{Usage: req.Usage, Action: action})
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) postName(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.send(c, protocol.SetName{Name: req.Name})
}

func (s *Server) postNameRefresh(c *gin.Context) {
	s.send(c, protocol.GetName{})
}

func (s *Server) postInfoRefresh(c *gin.Context) {
	s.send(c, protocol.GetInfo{})
}

type pinRequest struct {
	Pin string `json:"pin" binding:"required"`
}

func (s *Server) postPin(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.send(c, protocol.SetPin{Pin: req.Pin})
}

func (s *Server) deletePin(c *gin.Context) {
	s.send(c, protocol.ClearPin{})
}

func (s *Server) postPinVerify(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.send(c, protocol.VerifyPin{Pin: req.Pin})
}

// send ships a fire-and-forget command; 202 says "handed to the link", not
// "the dongle accepted it" - outcomes arrive later as Status frames.
func (s *Server) send(c *gin.Context, cmd protocol.Command) {
	if err := s.bridge.SendCommand(cmd); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}
