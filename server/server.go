package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tidwall/gjson"

	"social_post_generator/generator"
	"social_post_generator/preview"
)

const (
	generateTimeout = 120 * time.Second
	maxBodyBytes    = 1 << 20
)

type Server struct {
	agent *generator.Agent
}

func New(agent *generator.Agent) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	return &Server{agent: agent}, nil
}

// Routes builds the echo instance serving the API.
func (s *Server) Routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	e.Use(requestLogger)

	e.GET("/", s.handleHome)
	e.GET("/health", s.handleHealth)
	e.GET("/api/options", s.handleOptions)
	e.POST("/api/generate", s.handleGenerate)
	e.POST("/api/preview", s.handlePreview)
	return e
}

// --- Handlers ---

type errorResp struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) handleHome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"hello":     "world",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type platformOption struct {
	ID        generator.Platform `json:"id"`
	MaxLength int                `json:"maxLength"`
}

type optionsResp struct {
	Tones     []generator.Tone `json:"tones"`
	Platforms []platformOption `json:"platforms"`
}

func (s *Server) handleOptions(c echo.Context) error {
	resp := optionsResp{Tones: generator.AllTones}
	for _, p := range generator.AllPlatforms {
		resp.Platforms = append(resp.Platforms, platformOption{ID: p, MaxLength: p.MaxLength()})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGenerate(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResp{Error: "Invalid request body"})
	}
	if len(body) > maxBodyBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResp{
			Error:   "Request body too large",
			Message: fmt.Sprintf("request body must be %d bytes or less", maxBodyBytes),
		})
	}
	if !gjson.ValidBytes(body) {
		return c.JSON(http.StatusBadRequest, errorResp{Error: "Invalid JSON body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), generateTimeout)
	defer cancel()

	env, err := s.agent.Handle(ctx, generator.ParseRequest(body))
	if err != nil {
		var f *generator.Failure
		if !errors.As(err, &f) {
			slog.Error("unexpected generation error", "error", err)
			return c.JSON(http.StatusInternalServerError, errorResp{Error: "Failed to generate posts"})
		}
		return c.JSON(f.Status, errorResp{Error: f.Message, Details: f.Details})
	}
	return c.JSON(http.StatusOK, env)
}

type previewReq struct {
	Content string `json:"content"`
}

type previewResp struct {
	HTML string `json:"html"`
}

func (s *Server) handlePreview(c echo.Context) error {
	var req previewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResp{Error: "Invalid JSON body"})
	}
	out, err := preview.Render(req.Content)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResp{Error: "Preview failed", Message: err.Error()})
	}
	return c.JSON(http.StatusOK, previewResp{HTML: out})
}
