package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/alkime/podcurate/internal/wheel"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/pkg/channels"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	fieldHour     = "hour"
	fieldMinute   = "minute"
	fieldMeridiem = "meridiem"

	frameInterval = 16 * time.Millisecond
	writeTimeout  = 5 * time.Second
	queueSize     = 64
)

// wheelInput is a pointer event from the client.
type wheelInput struct {
	Type        string  `json:"type"` // drag, release or step
	Translation float64 `json:"translation,omitempty"`
	Steps       int     `json:"steps,omitempty"`
}

// wheelEvent is pushed to the client.
type wheelEvent struct {
	Type         string  `json:"type"` // state, change, progress or error
	Field        string  `json:"field"`
	Value        any     `json:"value,omitempty"`
	From         any     `json:"from,omitempty"`
	Steps        int     `json:"steps,omitempty"`
	Offset       float64 `json:"offset"`
	Fraction     float64 `json:"fraction,omitempty"`
	Decelerating bool    `json:"decelerating"`
	Time         string  `json:"time,omitempty"`
	Error        string  `json:"error,omitempty"`
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || !s.config.IsProduction() {
		return true
	}

	return slices.Contains(s.config.AllowedOrigins, origin)
}

// handleWheel upgrades to a WebSocket that drives one schedule time picker.
func (s *Server) handleWheel(c *gin.Context) {
	field := c.Param("field")
	if field != fieldHour && field != fieldMinute && field != fieldMeridiem {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown wheel " + field})
		return
	}

	sess := sessionFrom(c)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("wheel upgrade failed", "flow", sess.id, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	ws := &wheelSession{
		sess:  sess,
		field: field,
		conn:  conn,
		out:   make(chan wheelEvent, queueSize),
	}
	ws.stop = func() {
		cancel()
		_ = conn.Close()
	}

	sess.mu.Lock()
	err = ws.build(s.config.Wheel)
	if err == nil {
		ws.emit(ws.stateEvent())
	}
	sess.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to build wheel", "flow", sess.id, "field", field, "error", err)
		_ = conn.WriteJSON(wheelEvent{Type: "error", Field: field, Error: err.Error()})
		return
	}

	s.logger.Debug("wheel session opened", "flow", sess.id, "field", field)
	ws.run(ctx)
	s.logger.Debug("wheel session closed", "flow", sess.id, "field", field)
}

// wheelSession couples one WebSocket to one picker. Every wheel call is made
// with the flow lock held, so value changes land in the state directly and
// nothing under the lock may wait on the client.
type wheelSession struct {
	sess  *session
	field string
	conn  *websocket.Conn

	surface wheel.Surface
	resync  func()

	out       chan wheelEvent
	stop      func()
	wg        sync.WaitGroup
	animating bool
}

func (ws *wheelSession) build(cfg wheel.Config) error {
	st := ws.sess.flow.State()

	switch ws.field {
	case fieldMeridiem:
		b, err := wheel.NewBinary(cfg, wizard.AM, wizard.PM, st.ScheduleTime.Meridiem,
			wheel.WithOnChange(func(ch wheel.Change[wizard.Meridiem]) {
				st.ScheduleTime.Meridiem = ch.To
				ws.emit(ws.changeEvent(ch.From, ch.To, ch.Steps))
			}))
		if err != nil {
			return err
		}
		ws.surface = wheel.BinarySurfaceOf(b)
		ws.resync = func() { b.Set(st.ScheduleTime.Meridiem) }

		return nil

	default:
		target := &st.ScheduleTime.Minute
		values := wheel.Range(0, 59)
		if ws.field == fieldHour {
			target = &st.ScheduleTime.Hour
			values = wheel.Range(1, 12)
		}

		w, err := wheel.New(cfg, values, *target,
			wheel.WithOnChange(func(ch wheel.Change[int]) {
				*target = ch.To
				ws.emit(ws.changeEvent(ch.From, ch.To, ch.Steps))
			}),
			wheel.WithOnProgress[int](func(p wheel.Progress) {
				ws.emit(wheelEvent{
					Type:         "progress",
					Field:        ws.field,
					Offset:       p.Offset,
					Fraction:     p.Fraction,
					Decelerating: true,
				})
			}))
		if err != nil {
			return err
		}
		ws.surface = wheel.SurfaceOf(w)
		ws.resync = func() {
			if !w.Decelerating() {
				w.Set(*target)
			}
		}

		return nil
	}
}

func (ws *wheelSession) stateEvent() wheelEvent {
	t := ws.sess.flow.State().ScheduleTime

	var value any
	switch ws.field {
	case fieldHour:
		value = t.Hour
	case fieldMinute:
		value = t.Minute
	default:
		value = t.Meridiem
	}

	return wheelEvent{
		Type:         "state",
		Field:        ws.field,
		Value:        value,
		Offset:       ws.surface.Offset(),
		Decelerating: ws.surface.Decelerating(),
		Time:         t.String(),
	}
}

func (ws *wheelSession) changeEvent(from, to any, steps int) wheelEvent {
	return wheelEvent{
		Type:         "change",
		Field:        ws.field,
		Value:        to,
		From:         from,
		Steps:        steps,
		Offset:       ws.surface.Offset(),
		Decelerating: ws.surface.Decelerating(),
		Time:         ws.sess.flow.State().FormattedTime(),
	}
}

// emit queues an event for the writer without blocking. Progress frames are
// dropped when the client falls behind. Losing any other event would leave the
// client with a stale value, so a client that lets the queue fill up is
// disconnected instead.
func (ws *wheelSession) emit(ev wheelEvent) {
	err := channels.Offer(ws.out, ev)
	if err == nil || ev.Type == "progress" {
		return
	}

	if errors.Is(err, channels.ErrChannelFull) {
		ws.stop()
	}
}

func (ws *wheelSession) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ws.wg.Go(func() { ws.writeLoop(ctx, cancel) })

	for ctx.Err() == nil {
		var in wheelInput
		if err := ws.conn.ReadJSON(&in); err != nil {
			break
		}

		ws.handle(ctx, in)
	}

	cancel()
	ws.wg.Wait()
}

func (ws *wheelSession) handle(ctx context.Context, in wheelInput) {
	ws.sess.mu.Lock()
	defer ws.sess.mu.Unlock()

	ws.resync()

	now := time.Now()

	switch in.Type {
	case "drag":
		ws.surface.Drag(wheel.Sample{Translation: in.Translation, At: now})
	case "release":
		ws.surface.Release(now)
		if ws.surface.Decelerating() && !ws.animating {
			ws.animating = true
			ws.wg.Go(func() { ws.animate(ctx) })
		}
	case "step":
		ws.surface.Step(in.Steps)
	default:
		ws.emit(wheelEvent{Type: "error", Field: ws.field, Error: "unknown input " + in.Type})
	}
}

// animate drives momentum frames until the wheel settles.
func (ws *wheelSession) animate(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			ws.sess.mu.Lock()
			ws.surface.Tick(now)
			settled := !ws.surface.Decelerating()
			if settled {
				ws.animating = false
			}
			ws.sess.mu.Unlock()

			if settled {
				return
			}
		}
	}
}

func (ws *wheelSession) writeLoop(ctx context.Context, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ws.out:
			_ = ws.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.conn.WriteJSON(ev); err != nil {
				cancel()
				_ = ws.conn.Close()
				return
			}
		}
	}
}
