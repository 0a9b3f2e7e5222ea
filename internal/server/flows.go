package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alkime/podcurate/internal/wizard"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// flowView is the JSON shape of a flow.
type flowView struct {
	ID       string        `json:"id"`
	Step     int           `json:"step"`
	StepName string        `json:"step_name"`
	Done     bool          `json:"done"`
	Liked    string        `json:"liked"`
	State    *wizard.State `json:"state"`
}

func viewOf(sess *session) flowView {
	st := sess.flow.State()

	return flowView{
		ID:       sess.id,
		Step:     st.CurrentStep,
		StepName: sess.flow.Step().String(),
		Done:     sess.flow.Done(),
		Liked:    fmt.Sprintf("%02d/%02d", st.LikedCount(), st.MaxLiked),
		State:    st,
	}
}

// statusFor maps flow errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, wizard.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrInvalidValue), errors.Is(err, wizard.ErrInvalidTime):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrCapacityExceeded),
		errors.Is(err, wizard.ErrNoLikedItems),
		errors.Is(err, wizard.ErrLastStep),
		errors.Is(err, wizard.ErrNotAtSummary),
		errors.Is(err, wizard.ErrFlowCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// loadSession resolves :id and holds the flow lock for the rest of the chain.
func (s *Server) loadSession(c *gin.Context) {
	sess, ok := s.flows.get(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "flow not found"})
		return
	}

	c.Set(sessionKey, sess)

	// the wheel socket locks per frame instead
	if c.FullPath() == "/api/v1/flows/:id/wheel/:field" {
		c.Next()
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	c.Next()
}

func sessionFrom(c *gin.Context) *session {
	return c.MustGet(sessionKey).(*session) //nolint:forcetypeassert // set by loadSession
}

func (s *Server) handleCreateFlow(c *gin.Context) {
	sess := s.flows.create(s.config.Wizard, s.catalog)
	s.logger.Info("flow created", "flow", sess.id)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	c.JSON(http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetFlow(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(sessionFrom(c)))
}

func (s *Server) handleNext(c *gin.Context) {
	sess := sessionFrom(c)
	if err := sess.flow.Next(); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, viewOf(sess))
}

func (s *Server) handleBack(c *gin.Context) {
	sess := sessionFrom(c)
	sess.flow.Back()

	c.JSON(http.StatusOK, viewOf(sess))
}

func (s *Server) handleComplete(c *gin.Context) {
	sess := sessionFrom(c)

	if err := sess.flow.Complete(c.Request.Context(), s.handoff); err != nil {
		s.abortWithError(c, err)
		return
	}

	if s.store != nil {
		if err := s.store.Save(sess.id, sess.flow.State()); err != nil {
			s.logger.Error("failed to save snapshot", "flow", sess.id, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": sess.id, "summary": sess.flow.State().Summary()})
}

func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).flow.State().Summary())
}

func (s *Server) handleToggleTopic(c *gin.Context) {
	s.toggle(c, sessionFrom(c).flow.State().ToggleTopic)
}

func (s *Server) handleToggleFocus(c *gin.Context) {
	s.toggle(c, sessionFrom(c).flow.State().ToggleFocusArea)
}

func (s *Server) toggle(c *gin.Context, fn func(id string) (bool, error)) {
	selected, err := fn(c.Param("tag"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"selected": selected})
}

func (s *Server) handleToggleDay(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		s.abortWithError(c, fmt.Errorf("day %q: %w", c.Param("day"), wizard.ErrInvalidValue))
		return
	}

	st := sessionFrom(c).flow.State()

	selected, err := st.ToggleDay(wizard.Weekday(n))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"selected": selected, "days": st.SelectedDayNames()})
}

func (s *Server) handleToggleLike(c *gin.Context) {
	st := sessionFrom(c).flow.State()

	liked, err := st.ToggleLiked(c.Param("item"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":       liked,
		"liked_count": st.LikedCount(),
		"max_liked":   st.MaxLiked,
	})
}

func (s *Server) handleDeleteNews(c *gin.Context) {
	if !sessionFrom(c).flow.State().DeleteItem(c.Param("item")) {
		s.abortWithError(c, fmt.Errorf("news %q: %w", c.Param("item"), wizard.ErrItemNotFound))
		return
	}

	c.Status(http.StatusNoContent)
}

type scheduleRequest struct {
	Type       *wizard.ScheduleType `json:"type"`
	Frequency  *wizard.Frequency    `json:"frequency"`
	Time       *wizard.Time         `json:"time"`
	Expiration *string              `json:"expiration"`
}

// handleSchedule applies only the fields present in the body. Nothing is
// applied unless every present field is valid.
func (s *Server) handleSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := sessionFrom(c).flow.State()

	switch {
	case req.Type != nil && !req.Type.Valid():
		s.abortWithError(c, fmt.Errorf("schedule type %q: %w", *req.Type, wizard.ErrInvalidValue))
		return
	case req.Frequency != nil && !req.Frequency.Valid():
		s.abortWithError(c, fmt.Errorf("frequency %q: %w", *req.Frequency, wizard.ErrInvalidValue))
		return
	case req.Time != nil && !req.Time.Valid():
		s.abortWithError(c, fmt.Errorf("time %s: %w", req.Time, wizard.ErrInvalidTime))
		return
	}

	if req.Type != nil {
		_ = st.SetScheduleType(*req.Type)
	}
	if req.Frequency != nil {
		_ = st.SetFrequency(*req.Frequency)
	}
	if req.Time != nil {
		_ = st.SetTime(*req.Time)
	}
	if req.Expiration != nil {
		st.SetExpiration(*req.Expiration)
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule": st.ScheduleDescription(),
		"time":     st.FormattedTime(),
		"days":     st.SelectedDayNames(),
	})
}

type presentersRequest struct {
	DialogMode *wizard.DialogMode `json:"dialog_mode"`
	Presenter1 *wizard.Presenter  `json:"presenter1"`
	Presenter2 *wizard.Presenter  `json:"presenter2"`
}

func (s *Server) handlePresenters(c *gin.Context) {
	var req presentersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := sessionFrom(c).flow.State()
	before := *st

	apply := func() error {
		if req.DialogMode != nil {
			if err := st.SetDialogMode(*req.DialogMode); err != nil {
				return err
			}
		}
		if p := req.Presenter1; p != nil {
			if err := st.SetPresenter(wizard.SlotFirst, p.Name, p.Style); err != nil {
				return err
			}
		}
		if p := req.Presenter2; p != nil {
			if err := st.SetPresenter(wizard.SlotSecond, p.Name, p.Style); err != nil {
				return err
			}
		}
		return nil
	}

	if err := apply(); err != nil {
		st.DialogMode, st.Presenter1, st.Presenter2 = before.DialogMode, before.Presenter1, before.Presenter2
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dialog_mode": st.DialogMode,
		"presenter1":  st.Presenter1,
		"presenter2":  st.Presenter2,
	})
}

func (s *Server) handleDuration(c *gin.Context) {
	var req struct {
		Duration wizard.Duration `json:"duration" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := sessionFrom(c).flow.State()
	if err := st.SetDuration(req.Duration); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"duration": st.ContentDuration, "label": st.ContentDuration.Label()})
}
