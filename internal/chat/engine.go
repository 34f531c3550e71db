// Package chat is the conversation controller: it turns an incoming message
// and the session's state into assistant replies and a state transition.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/themobileprof/careportal-assistant/internal/classifier"
	"github.com/themobileprof/careportal-assistant/internal/conversation"
	"github.com/themobileprof/careportal-assistant/internal/fallback"
	"github.com/themobileprof/careportal-assistant/internal/memory"
	"github.com/themobileprof/careportal-assistant/internal/privacy"
	"github.com/themobileprof/careportal-assistant/internal/remote"
	"github.com/themobileprof/careportal-assistant/internal/reply"
)

var (
	ErrMissingSession = errors.New("chat: session id is required")
	ErrEmptyMessage   = errors.New("chat: message or action is required")
	ErrUnknownAction  = errors.New("chat: unknown action")
)

// Interfaces for dependencies
type MatcherInterface interface {
	Match(text string, state conversation.State) (classifier.Intent, bool)
}

type SpecialistInterface interface {
	Classify(text string) (string, bool)
}

type ResolverInterface interface {
	Resolve(ctx context.Context, text string, session remote.Session) (remote.Result, error)
}

// Recorder persists the message log beyond the in-memory transcript
type Recorder interface {
	Append(ctx context.Context, sessionID string, msg memory.Message) error
	List(ctx context.Context, sessionID string, limit int) ([]memory.Message, error)
	Delete(ctx context.Context, sessionID string) error
}

// ProcessRequest contains all data needed to process a message
type ProcessRequest struct {
	SessionID  string
	Token      string
	HasSession bool
	Text       string
	Action     string
}

// Result is the outcome of one message
type Result struct {
	SessionID string
	Replies   []memory.Message
	State     conversation.State
	// Stale is set when a newer message arrived first; the replies are still
	// logged but the state change was dropped
	Stale bool
}

// Engine handles conversation logic independent of transport
type Engine struct {
	matcher     MatcherInterface
	specialists SpecialistInterface
	resolver    ResolverInterface
	states      *conversation.Manager
	transcript  *memory.Transcript
	recorder    Recorder
}

// NewEngine creates a new transport-agnostic chat engine
func NewEngine(
	matcher MatcherInterface,
	specialists SpecialistInterface,
	resolver ResolverInterface,
	states *conversation.Manager,
	transcript *memory.Transcript,
) *Engine {
	return &Engine{
		matcher:     matcher,
		specialists: specialists,
		resolver:    resolver,
		states:      states,
		transcript:  transcript,
	}
}

// SetRecorder mirrors every logged message to rec
func (e *Engine) SetRecorder(rec Recorder) {
	e.recorder = rec
}

// ProcessMessage handles one user message or UI action. Remote failures never
// surface as errors; only malformed requests do.
func (e *Engine) ProcessMessage(ctx context.Context, req ProcessRequest) (*Result, error) {
	if req.SessionID == "" {
		return nil, ErrMissingSession
	}
	text := strings.TrimSpace(req.Text)

	var action Action
	if req.Action != "" {
		a, ok := ParseAction(req.Action)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
		}
		action = a
	} else if text == "" {
		return nil, ErrEmptyMessage
	}

	log.Printf("Processing message: session=%s, action=%q, length=%d, hasSession=%v",
		req.SessionID, action, len(text), req.HasSession)
	if privacy.ContainsPII(text) {
		log.Printf("Warning: Potential PII detected in message from session=%s", req.SessionID)
	}

	ticket := e.states.Begin(req.SessionID, req.HasSession)

	if text != "" {
		e.record(ctx, req.SessionID, memory.NewUserMessage(text))
	}

	var (
		next conversation.State
		out  reply.Reply
	)
	if action != "" {
		next, out = e.dispatchAction(ticket.State, action, text)
	} else {
		next, out = e.route(ctx, ticket.State, text, remote.Session{HasSession: req.HasSession, Token: req.Token})
	}

	result := &Result{SessionID: req.SessionID, State: next}
	if !e.states.Commit(ticket, next) {
		log.Printf("Newer message arrived for session=%s, dropping state change from seq=%d", req.SessionID, ticket.Seq)
		result.Stale = true
		result.State = e.states.Snapshot(req.SessionID)
	}

	msg := memory.NewAssistantMessage(out.Text, string(out.Widget), out.Payload)
	e.record(ctx, req.SessionID, msg)
	result.Replies = []memory.Message{msg}

	return result, nil
}

// route handles free text: matcher first, then the specialist classifier or
// the remote service depending on the intent
func (e *Engine) route(ctx context.Context, state conversation.State, text string, session remote.Session) (conversation.State, reply.Reply) {
	intent, ok := e.matcher.Match(text, state)
	if !ok {
		log.Printf("No local intent for %q, delegating to remote service", privacy.SanitizeForLogging(text))
		return e.delegate(ctx, state, text, session, classifier.IntentDefault)
	}
	log.Printf("Intent classified: %s (phase: %s)", intent, state.Phase())

	switch intent {
	case classifier.IntentDescribeSymptoms:
		return e.handleSymptoms(state, text)

	case classifier.IntentGreeting:
		return state.Idle(), reply.Compose(reply.StepWelcome, reply.Params{})

	case classifier.IntentBookingSteps:
		next := state.Idle()
		next.CurrentFlow = conversation.FlowAppointment
		next.Pending = conversation.PendingMoreHelp
		return next, reply.Compose(reply.StepBookingSteps, reply.Params{})

	case classifier.IntentRescheduleRestricted:
		next := state
		next.Pending = conversation.PendingNone
		return next, reply.Compose(reply.StepRescheduleRestricted, reply.Params{})

	case classifier.IntentBookingHelpYes:
		return answer(state, true)

	case classifier.IntentBookingHelpNo:
		return answer(state, false)

	case classifier.IntentMoreHelp:
		return state.Idle(), reply.Compose(reply.StepHelpOptions, reply.Params{})

	case classifier.IntentShowAllDoctors:
		next := state.Idle()
		next.CurrentFlow = conversation.FlowFindDoctor
		return next, reply.Compose(reply.StepAllDoctors, reply.Params{})

	case classifier.IntentBookAppointment, classifier.IntentViewBookings, classifier.IntentFindDoctor,
		classifier.IntentMedicineRecommendation, classifier.IntentTrackDelivery:
		if !state.HasSession {
			log.Printf("No session, answering %s locally", intent)
			return state, degraded(fallback.ForMessage(text))
		}
		return e.delegate(ctx, state, text, session, intent)

	default:
		return e.delegate(ctx, state, text, session, intent)
	}
}

// delegate asks the remote service. local is the intent the matcher found, or
// IntentDefault. When the service can't answer, the canned reply is picked
// from the text exactly as on the no-session path, so an expired token and a
// signed-out user see the same answer.
func (e *Engine) delegate(ctx context.Context, state conversation.State, text string, session remote.Session, local classifier.Intent) (conversation.State, reply.Reply) {
	res, err := e.resolver.Resolve(ctx, text, session)
	if err != nil {
		if !remote.IsUnavailable(err) {
			log.Printf("Unexpected remote error: %v", err)
		}
		log.Printf("Remote service unavailable (%v), using fallback for %s", err, local)
		return state, degraded(fallback.ForMessage(text))
	}
	log.Printf("Remote intent: %s", res.Intent)

	params := reply.Params{Text: res.Text}
	payload := fieldsPayload(res.Fields)
	withFlow := func(f conversation.Flow, step reply.Step) (conversation.State, reply.Reply) {
		next := state.Idle()
		next.CurrentFlow = f
		out := reply.Compose(step, params)
		out.Payload = merge(out.Payload, payload)
		return next, out
	}

	switch res.Intent {
	case classifier.IntentBookAppointment:
		next, out := withFlow(conversation.FlowAppointment, reply.StepAppointment)
		next.Pending = conversation.PendingBookingHelp
		return next, out
	case classifier.IntentViewBookings:
		return withFlow(conversation.FlowAppointment, reply.StepViewAppointments)
	case classifier.IntentFindDoctor:
		return withFlow(conversation.FlowFindDoctor, reply.StepDoctorFinder)
	case classifier.IntentShowAllDoctors:
		return withFlow(conversation.FlowFindDoctor, reply.StepAllDoctors)
	case classifier.IntentMedicineRecommendation:
		return withFlow(conversation.FlowMedicine, reply.StepMedicine)
	case classifier.IntentTrackDelivery:
		return withFlow(conversation.FlowTrackDelivery, reply.StepDelivery)
	case classifier.IntentDescribeSymptoms:
		return e.handleSymptoms(state, text)
	case classifier.IntentGreeting:
		return withFlow(conversation.FlowNone, reply.StepWelcome)
	default:
		out := reply.Compose(reply.StepFallback, params)
		out.Payload = payload
		return state, out
	}
}

// handleSymptoms asks the specialist classifier. Without a match the state is
// left as it was and the user is asked for more detail.
func (e *Engine) handleSymptoms(state conversation.State, text string) (conversation.State, reply.Reply) {
	specialty, ok := e.specialists.Classify(text)
	if !ok {
		log.Printf("No specialty matched for %q", privacy.SanitizeForLogging(text))
		return state, reply.Compose(reply.StepMoreDetail, reply.Params{})
	}
	log.Printf("Suggesting specialty: %s", specialty)

	next := state
	next.AwaitingSymptoms = false
	next.CurrentFlow = conversation.FlowFindDoctor
	next.Pending = conversation.PendingSpecialistConfirmation
	next.Specialty = specialty
	return next, reply.Compose(reply.StepSpecialistConfirmation, reply.Params{Specialty: specialty})
}

func degraded(fb fallback.Response) reply.Reply {
	return reply.Reply{Text: fb.Content}
}

func fieldsPayload(fields map[string]any) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	payload := make(map[string]string, len(fields))
	for k, v := range fields {
		switch v.(type) {
		case string, float64, bool:
			payload[k] = fmt.Sprint(v)
		}
	}
	if len(payload) == 0 {
		return nil
	}
	return payload
}

func merge(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
	return dst
}

// record appends to the transcript and, when configured, the recorder.
// Recorder failures are logged and never fail the chat turn.
func (e *Engine) record(ctx context.Context, sessionID string, msg memory.Message) {
	e.transcript.Append(sessionID, msg)
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Append(ctx, sessionID, msg); err != nil {
		log.Printf("Failed to save %s message: %v", msg.Sender, err)
	}
}

// Welcome logs and returns the greeting shown when a chat opens. It is a no-op
// returning nil when the session already has history.
func (e *Engine) Welcome(ctx context.Context, sessionID string) []memory.Message {
	if len(e.transcript.History(sessionID)) > 0 {
		return nil
	}
	out := reply.Compose(reply.StepWelcome, reply.Params{})
	msg := memory.NewAssistantMessage(out.Text, string(out.Widget), out.Payload)
	e.record(ctx, sessionID, msg)
	return []memory.Message{msg}
}

// History returns the session's message log, reading the recorder when the
// in-memory transcript is empty (e.g. after a restart)
func (e *Engine) History(ctx context.Context, sessionID string, limit int) ([]memory.Message, error) {
	history := e.transcript.History(sessionID)
	if len(history) == 0 && e.recorder != nil {
		stored, err := e.recorder.List(ctx, sessionID, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		return stored, nil
	}
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history, nil
}

// State returns the session's current conversation state
func (e *Engine) State(sessionID string) conversation.State {
	return e.states.Snapshot(sessionID)
}

// Restart drops the session's state and log
func (e *Engine) Restart(ctx context.Context, sessionID string) error {
	e.states.Reset(sessionID)
	e.transcript.Clear(sessionID)
	if e.recorder != nil {
		if err := e.recorder.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to delete history: %w", err)
		}
	}
	log.Printf("Restarted session=%s", sessionID)
	return nil
}
