package audit

import (
	"time"

	"examplar-api/internal/rbac"
	"examplar-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// ActorType represents the type of entity performing an action
type ActorType string

const (
	ActorTypeUser      ActorType = "user"
	ActorTypeAPIKey    ActorType = "api_key"
	ActorTypeAnonymous ActorType = "anonymous"
)

// Action represents the access-control step being recorded
type Action string

const (
	ActionAuthenticate Action = "authenticate"
	ActionAuthorize    Action = "authorize"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

// Event represents an audit event
type Event struct {
	ID           uuid.UUID
	Action       Action
	Status       Status
	Scheme       string
	ActorType    ActorType
	Actor        string
	Method       string
	Route        string
	IPAddress    string
	UserAgent    string
	RequestID    string
	ErrorMessage string
	CreatedAt    time.Time
}

// DecisionCounter receives one increment per recorded event
type DecisionCounter interface {
	IncAuthDecision(scheme, action, outcome string)
}

// Logger writes audit events to a structured logger
type Logger struct {
	log     log.FieldLogger
	counter DecisionCounter
}

// NewLogger creates a new audit logger
func NewLogger(l log.FieldLogger) *Logger {
	return &Logger{log: l}
}

// WithCounter attaches a counter that is bumped for every event
func (l *Logger) WithCounter(c DecisionCounter) *Logger {
	l.counter = c
	return l
}

// Log records an audit event
func (l *Logger) Log(event *Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	entry := l.log.WithFields(log.Fields{
		"audit_id":   event.ID.String(),
		"action":     string(event.Action),
		"status":     string(event.Status),
		"scheme":     event.Scheme,
		"actor_type": string(event.ActorType),
		"actor":      event.Actor,
		"method":     event.Method,
		"route":      event.Route,
		"ip":         event.IPAddress,
		"user_agent": event.UserAgent,
		"request_id": event.RequestID,
	})
	if event.ErrorMessage != "" {
		entry = entry.WithField("reason", event.ErrorMessage)
	}

	if event.Status == StatusSuccess {
		entry.Debug("audit")
	} else {
		entry.Warn("audit")
	}

	if l.counter != nil {
		l.counter.IncAuthDecision(event.Scheme, string(event.Action), string(event.Status))
	}
}

// LogFromContext builds an event from the request and logs it
func (l *Logger) LogFromContext(c echo.Context, action Action, status Status, scheme string, principal *rbac.Principal, reason error) {
	event := &Event{
		Action:    action,
		Status:    status,
		Scheme:    scheme,
		Method:    c.Request().Method,
		Route:     c.Path(),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}
	event.ActorType, event.Actor = actorOf(principal)
	if reason != nil {
		event.ErrorMessage = reason.Error()
	}

	l.Log(event)
}

func actorOf(p *rbac.Principal) (ActorType, string) {
	if p == nil {
		return ActorTypeAnonymous, ""
	}
	if p.Type == rbac.AuthTypeAPIKey {
		return ActorTypeAPIKey, logger.MaskSecret(p.Name)
	}
	return ActorTypeUser, p.Name
}
