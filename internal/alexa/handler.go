package alexa

import (
	"context"
	"encoding/json"

	"kidpoints/internal/core"
	"kidpoints/internal/log"
	"kidpoints/internal/service"
	"kidpoints/internal/slots"
	"kidpoints/internal/trend"
)

// actorVoice marks events recorded through the voice surface.
const actorVoice = "voice"

// Handler turns request envelopes into response envelopes. It owns no
// state beyond its collaborators and is safe for concurrent use.
type Handler struct {
	svc      *service.PointsService
	logger   *log.Logger
	trendDoc json.RawMessage
}

func NewHandler(svc *service.PointsService, logger *log.Logger, trendDoc json.RawMessage) *Handler {
	return &Handler{svc: svc, logger: logger, trendDoc: trendDoc}
}

// Handle dispatches one request. It never returns an error: any failure
// downstream becomes a spoken apology so the session degrades gracefully.
func (h *Handler) Handle(ctx context.Context, env *RequestEnvelope) ResponseEnvelope {
	kind := Classify(env)
	h.logger.InfoContext(ctx, "Dispatching request",
		log.FieldRequestKind, string(kind),
		log.FieldIntent, env.IntentName())

	resp, err := h.dispatch(ctx, env, kind)
	if err != nil {
		h.logger.ErrorContext(ctx, "Request handling failed",
			log.FieldRequestKind, string(kind),
			log.FieldError, err)
		return Tell(speechApology)
	}
	return resp
}

func (h *Handler) dispatch(ctx context.Context, env *RequestEnvelope, kind RequestKind) (ResponseEnvelope, error) {
	switch kind {
	case KindLaunch:
		return h.handleLaunch(ctx, env)
	case KindAddPoints:
		return h.handleAddPoints(ctx, env)
	case KindSummary:
		return h.handleSummary(ctx, env)
	case KindConfigureKids:
		return h.handleConfigureKids(ctx, env)
	case KindHelp:
		return Ask(speechHelp, speechHelp), nil
	case KindStop:
		return Tell(speechGoodbye), nil
	case KindCanFulfill:
		return h.handleCanFulfill(env), nil
	case KindSessionEnded:
		return ResponseEnvelope{Version: "1.0"}, nil
	default:
		return Ask(speechFallback, speechFallback), nil
	}
}

// family loads the caller's config. A missing family short-circuits every
// intent except onboarding into the onboarding prompt.
func (h *Handler) family(ctx context.Context, env *RequestEnvelope) (core.Family, *ResponseEnvelope, error) {
	fam, ok, err := h.svc.Family(ctx, env.UserID())
	if err != nil {
		return core.Family{}, nil, err
	}
	if !ok || !fam.Configured() {
		resp := Ask(speechOnboarding, speechOnboardingReprompt)
		return core.Family{}, &resp, nil
	}
	return fam, nil, nil
}

func (h *Handler) handleLaunch(ctx context.Context, env *RequestEnvelope) (ResponseEnvelope, error) {
	fam, gate, err := h.family(ctx, env)
	if err != nil || gate != nil {
		return gateOr(gate), err
	}
	text := "Welcome back to Kid Points. You can add points for " +
		joinNames(fam.Kids) + ", or ask for a summary."
	return Ask(text, speechHelp), nil
}

func (h *Handler) handleAddPoints(ctx context.Context, env *RequestEnvelope) (ResponseEnvelope, error) {
	fam, gate, err := h.family(ctx, env)
	if err != nil || gate != nil {
		return gateOr(gate), err
	}

	person := slots.MatchPerson(env.SlotValue(slotPerson), fam.Kids)
	if person == "" {
		text := unknownPersonSpeech(fam.Kids)
		return Ask(text, text), nil
	}

	delta := slots.SignedDelta(env.SlotValue(slotPoints), env.SlotValue(slotDirection))
	total, err := h.svc.RecordAdjustment(ctx, fam, person, delta, actorVoice, "")
	if err != nil {
		return ResponseEnvelope{}, err
	}

	h.logger.InfoContext(ctx, "Adjustment recorded",
		log.FieldPerson, person,
		log.FieldDelta, delta,
		log.FieldTab, fam.TabName)
	return Tell(adjustmentSpeech(person, delta, total)), nil
}

func (h *Handler) handleSummary(ctx context.Context, env *RequestEnvelope) (ResponseEnvelope, error) {
	fam, gate, err := h.family(ctx, env)
	if err != nil || gate != nil {
		return gateOr(gate), err
	}

	period := slots.PeriodFrom(env.SlotValue(slotPeriod))
	summary, err := h.svc.Summarize(ctx, fam, period)
	if err != nil {
		return ResponseEnvelope{}, err
	}

	resp := Tell(summarySpeech(summary.Period, summary.Persons, summary.Sums))
	if env.SupportsAPL() && len(h.trendDoc) > 0 {
		payload := trend.Build(summary.Dates, summary.Labels, summary.Totals, summary.Persons)
		resp = WithTrend(resp, h.trendDoc, payload)
	}
	return resp, nil
}

func (h *Handler) handleConfigureKids(ctx context.Context, env *RequestEnvelope) (ResponseEnvelope, error) {
	kids := slots.KidList(env.SlotValue(slotKids))
	if len(kids) == 0 {
		return Ask(speechOnboardingReprompt, speechOnboardingReprompt), nil
	}

	fam, err := h.svc.ConfigureKids(ctx, env.UserID(), kids)
	if err != nil {
		return ResponseEnvelope{}, err
	}

	h.logger.InfoContext(ctx, "Kids configured",
		log.FieldKidsCount, len(fam.Kids),
		log.FieldTab, fam.TabName)
	text := "Great, I'm tracking points for " + joinNames(fam.Kids) +
		". You can say: add a point for " + fam.Kids[0] + "."
	return Ask(text, speechHelp), nil
}

// handleCanFulfill answers the platform's capability pre-check. It mirrors
// intent classification but performs no reads or writes.
func (h *Handler) handleCanFulfill(env *RequestEnvelope) ResponseEnvelope {
	answer := "NO"
	switch classifyIntent(env.IntentName()) {
	case KindAddPoints, KindSummary, KindConfigureKids:
		answer = "YES"
	}

	var slotAnswers map[string]CanFulfillSlot
	if env.Request.Intent != nil && len(env.Request.Intent.Slots) > 0 {
		slotAnswers = make(map[string]CanFulfillSlot, len(env.Request.Intent.Slots))
		for name := range env.Request.Intent.Slots {
			slotAnswers[name] = CanFulfillSlot{CanUnderstand: "YES", CanFulfill: "MAYBE"}
		}
	}

	return ResponseEnvelope{
		Version: "1.0",
		Response: Response{
			CanFulfillIntent: &CanFulfillIntent{CanFulfill: answer, Slots: slotAnswers},
			ShouldEndSession: true,
		},
	}
}

func gateOr(gate *ResponseEnvelope) ResponseEnvelope {
	if gate != nil {
		return *gate
	}
	return ResponseEnvelope{}
}
