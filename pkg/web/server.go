// Package web bridges the assistant to browser clients: transcripts come
// in over a websocket or HTTP, assistant events fan out to every
// connected client.
package web

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/acetransit/voicekit/pkg/assistant"
	"github.com/acetransit/voicekit/pkg/booking"
	"github.com/acetransit/voicekit/pkg/dialogue"
)

// Server hosts one assistant conversation and its connected UIs.
type Server struct {
	app    *fiber.App
	hub    *Hub
	asst   *assistant.Assistant
	form   *booking.MemoryForm
	port   string
	logger *slog.Logger
}

// NewServer wires an assistant to the bridge. Assistant options (remote
// resolver, session store) pass straight through.
func NewServer(port string, asstOpts ...assistant.Option) *Server {
	s := &Server{
		port:   port,
		form:   booking.NewMemoryForm(),
		logger: slog.Default().With("component", "web"),
	}
	s.hub = newHub(s.handleClientMessage)

	speaker := dialogue.SpeakerFunc(func(text string) {
		s.hub.BroadcastEvent(Event{Type: EvtSpeak, Text: text})
	})
	s.asst = assistant.New(s.form, speaker, asstOpts...)

	events := s.asst.Events()
	events.SetField.Subscribe(func(ev booking.SetFieldEvent) {
		if ev.Scope == booking.ScopeBooking {
			s.form.Apply(ev)
		}
		s.hub.BroadcastEvent(Event{
			Type:  EvtSetField,
			Scope: string(ev.Scope),
			Field: ev.Field,
			Value: ev.Value,
		})
	})
	events.Action.Subscribe(func(ev booking.ActionEvent) {
		s.hub.BroadcastEvent(Event{
			Type:   EvtAction,
			Scope:  string(ev.Scope),
			Action: string(ev.Action),
		})
		// The bridge is the form host, so step actions move the form and
		// feed the step signal back to the assistant. The signal goes out
		// on a fresh goroutine because this handler runs inside the
		// assistant's own dispatch.
		switch {
		case ev.Scope == booking.ScopeBooking && ev.Action == booking.ActionNext:
			step := s.form.Advance()
			go s.asst.OnStepChanged(context.Background(), step)
		case ev.Scope == booking.ScopeBooking && ev.Action == booking.ActionBack:
			step := s.form.Back()
			go s.asst.OnStepChanged(context.Background(), step)
		}
	})
	events.Navigate.Subscribe(func(path string) {
		s.hub.BroadcastEvent(Event{Type: EvtNavigate, Path: path})
	})

	app := fiber.New(fiber.Config{
		AppName:               "voicekit bridge",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/state", s.handleState)
	api.Post("/text", s.handleText)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/assistant", websocket.New(s.handleAssistantWS))

	s.app = app
	return s
}

// Assistant exposes the hosted assistant.
func (s *Server) Assistant() *assistant.Assistant { return s.asst }

// Hub exposes the broadcast hub, mainly for tests.
func (s *Server) Hub() *Hub { return s.hub }

// Start runs the hub and listens. Blocks until shutdown.
func (s *Server) Start() error {
	go s.hub.Run()
	s.logger.Info("bridge listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "clients": s.hub.ClientCount()})
}

// handleState reports the session, step and the filled booking fields.
func (s *Server) handleState(c *fiber.Ctx) error {
	sess := s.asst.Session()
	fields := make(map[string]string)
	for step := booking.FirstStep; step <= booking.LastStep; step++ {
		for _, f := range booking.FieldsForStep(step) {
			if v := s.form.GetField(f.ID); v != "" {
				fields[f.ID] = v
			}
		}
	}
	return c.JSON(fiber.Map{
		"sessionId":   sess.ID,
		"currentPage": sess.CurrentPage,
		"step":        s.form.Step(),
		"guided":      s.asst.Engine().Enabled(),
		"fields":      fields,
	})
}

// handleText accepts a transcript over plain HTTP, for clients without a
// websocket. Replies stream over the websocket feed.
func (s *Server) handleText(c *fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}
	go s.asst.HandleText(context.Background(), body.Text)
	return c.SendStatus(fiber.StatusAccepted)
}

func (s *Server) handleAssistantWS(conn *websocket.Conn) {
	newClient(s.hub, conn).run()
}

// handleClientMessage routes one inbound websocket message.
func (s *Server) handleClientMessage(msg ClientMessage) {
	ctx := context.Background()
	switch msg.Type {
	case MsgTranscript:
		if strings.TrimSpace(msg.Text) != "" {
			go s.asst.HandleText(ctx, msg.Text)
		}
	case MsgStep:
		s.asst.OnStepChanged(ctx, msg.Step)
	case MsgLocation:
		s.asst.OnLocationDetected(ctx, booking.DetectedLocation{Address: msg.Address, City: msg.City})
	case MsgPage:
		s.asst.SetPage(msg.Path)
	default:
		s.logger.Warn("unknown client message", "type", msg.Type)
	}
}
