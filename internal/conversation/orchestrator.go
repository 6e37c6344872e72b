// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/giftmatch/internal/budget"
	"github.com/tomtom215/giftmatch/internal/extractor"
	"github.com/tomtom215/giftmatch/internal/metrics"
	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// Extractor turns free text into a partial profile.
type Extractor interface {
	Extract(ctx context.Context, userText string, current profile.Profile, lang string) (*extractor.Extraction, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Ranker ranks the catalog for a complete profile.
type Ranker interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// LanguageCache stores the language detected for each session.
type LanguageCache interface {
	Get(sessionID string) (string, bool, error)
	Set(sessionID, lang string) error
}

// Config holds orchestrator policy.
type Config struct {
	// ProceedWithoutBudget ranks after the budget question has been asked
	// once without an answer. When false the question is repeated.
	ProceedWithoutBudget bool

	// DefaultLanguage is used when detection fails.
	DefaultLanguage string

	// Limit is the number of recommendations returned. Zero uses the
	// ranker's default.
	Limit int

	Budget budget.Policy
}

// DefaultConfig returns the stock policy.
func DefaultConfig() Config {
	return Config{
		ProceedWithoutBudget: true,
		DefaultLanguage:      profile.LangEnglish,
		Limit:                10,
		Budget:               budget.DefaultPolicy(),
	}
}

// TurnRequest is one free-text user turn. Previous and BudgetAsked are
// persisted by the caller between turns.
type TurnRequest struct {
	SessionID   string
	UserText    string
	Previous    profile.Profile
	BudgetAsked bool
}

// ReviseRequest is an explicit correction of stored answers. ExcludeIDs
// lists products already shown in the session; they are left out of the
// re-ranked results.
type ReviseRequest struct {
	SessionID   string
	Previous    profile.Profile
	Update      profile.Update
	BudgetAsked bool
	ExcludeIDs  []int64
}

// Result is the outcome of a turn. Recommendations is nil unless State is
// StateTerminalResults.
type Result struct {
	State       State
	Message     string
	FieldKey    profile.Slot
	Profile     profile.Profile
	BudgetAsked bool
	SessionID   string
	Language    string

	Algorithm       recommend.Algorithm
	Recommendations []recommend.Candidate

	// ExtractionError and RawResponse are set when the model reply could
	// not be used. Profile is then the previous profile unchanged.
	ExtractionError string
	RawResponse     string
}

// Orchestrator sequences extraction, merging, completeness checks and
// ranking. It keeps no per-session profile state.
type Orchestrator struct {
	cfg       Config
	extractor Extractor
	ranker    Ranker
	languages LanguageCache
	logger    zerolog.Logger
}

// New creates an orchestrator. languages may be nil, in which case the
// language is detected on every turn.
func New(cfg Config, ext Extractor, ranker Ranker, languages LanguageCache, logger zerolog.Logger) (*Orchestrator, error) {
	if ext == nil {
		return nil, errors.New("extractor is required")
	}
	if ranker == nil {
		return nil, errors.New("ranker is required")
	}
	if err := cfg.Budget.Validate(); err != nil {
		return nil, fmt.Errorf("budget policy: %w", err)
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = profile.LangEnglish
	}
	return &Orchestrator{
		cfg:       cfg,
		extractor: ext,
		ranker:    ranker,
		languages: languages,
		logger:    logger,
	}, nil
}

// Turn processes one free-text turn.
//
// A model reply that cannot be parsed is not an error: the result carries
// the raw reply and a request to rephrase, and the previous profile is
// returned unchanged. Other extractor failures are returned as errors.
// An inverted budget in the previous profile is rejected before the model
// is called.
//
//nolint:gocritic // TurnRequest carries the profile by value
func (o *Orchestrator) Turn(ctx context.Context, req TurnRequest) (*Result, error) {
	if err := req.Previous.CheckBudget(); err != nil {
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	lang := o.language(ctx, sessionID, req.UserText)

	extraction, err := o.extractor.Extract(ctx, req.UserText, req.Previous, lang)
	if err != nil {
		var perr *extractor.ParseError
		if !errors.As(err, &perr) {
			return nil, fmt.Errorf("extract profile: %w", err)
		}
		o.logger.Warn().Err(err).Str("session_id", sessionID).Msg("extraction rejected, asking user to rephrase")
		return o.rephrase(req, sessionID, lang, perr)
	}

	update := extraction.Update
	update.MinBudget, update.MaxBudget = budget.Infer(update.MinBudget, update.MaxBudget, extraction.Hint, o.cfg.Budget)

	res, err := o.Advance(ctx, req.Previous, update, req.BudgetAsked, lang)
	if err != nil {
		return nil, err
	}
	res.SessionID = sessionID
	return res, nil
}

// rephrase keeps the session where it was: the pending question is derived
// from the previous profile, nothing is ranked.
//
//nolint:gocritic // see Turn
func (o *Orchestrator) rephrase(req TurnRequest, sessionID, lang string, perr *extractor.ParseError) (*Result, error) {
	missing, err := req.Previous.MissingFields()
	if err != nil {
		return nil, err
	}

	res := &Result{
		State:           StateBudgetPending,
		Message:         message(lang, msgRephrase),
		FieldKey:        profile.SlotBudget,
		Profile:         req.Previous,
		BudgetAsked:     req.BudgetAsked,
		SessionID:       sessionID,
		Language:        lang,
		ExtractionError: perr.Err.Error(),
		RawResponse:     perr.Raw,
	}
	if len(missing) > 0 {
		res.State = StateCollecting
		res.FieldKey = missing[0]
	}
	metrics.RecordConversationTurn(string(res.State), string(res.FieldKey))
	return res, nil
}

// Revise applies an explicit correction and recomputes the state without
// calling the extractor. Budget values are taken literally.
//
//nolint:gocritic // see Turn
func (o *Orchestrator) Revise(ctx context.Context, req ReviseRequest) (*Result, error) {
	revised, err := req.Previous.Revise(req.Update)
	if err != nil {
		return nil, err
	}

	lang := o.cfg.DefaultLanguage
	if req.SessionID != "" && o.languages != nil {
		if cached, ok := o.cachedLanguage(req.SessionID); ok {
			lang = cached
		}
	}

	res, err := o.evaluate(ctx, revised, req.BudgetAsked, lang, req.ExcludeIDs)
	if err != nil {
		return nil, err
	}
	res.SessionID = req.SessionID
	return res, nil
}

// Advance merges update into previous under the first-answer-wins policy
// and decides whether to ask another question or rank.
func (o *Orchestrator) Advance(ctx context.Context, previous profile.Profile, update profile.Update, budgetAsked bool, lang string) (*Result, error) {
	return o.evaluate(ctx, previous.Merge(update), budgetAsked, lang, nil)
}

//nolint:gocritic // profile.Profile is a small value type
func (o *Orchestrator) evaluate(ctx context.Context, p profile.Profile, budgetAsked bool, lang string, exclude []int64) (*Result, error) {
	lang = profile.NormalizeLanguage(lang)
	res := &Result{Profile: p, BudgetAsked: budgetAsked, Language: lang}

	missing, err := p.MissingFields()
	if err != nil {
		return nil, err
	}

	switch {
	case len(missing) > 0:
		res.State = StateCollecting
		res.FieldKey = missing[0]
		res.Message = slotQuestion(lang, missing[0])
	case !p.HasBudget() && (!budgetAsked || !o.cfg.ProceedWithoutBudget):
		res.State = StateBudgetPending
		res.FieldKey = profile.SlotBudget
		res.Message = profile.SlotBudget.Prompt(lang)
		res.BudgetAsked = true
	default:
		if err := o.rank(ctx, res, exclude); err != nil {
			return nil, err
		}
	}

	metrics.RecordConversationTurn(string(res.State), string(res.FieldKey))
	return res, nil
}

func (o *Orchestrator) rank(ctx context.Context, res *Result, exclude []int64) error {
	res.State = StateReady
	resp, err := o.ranker.Recommend(ctx, recommend.Request{
		Vector:     recommend.FromProfile(res.Profile),
		MinBudget:  res.Profile.MinBudget,
		MaxBudget:  res.Profile.MaxBudget,
		Limit:      o.cfg.Limit,
		ExcludeIDs: exclude,
	})
	if err != nil {
		return fmt.Errorf("rank catalog: %w", err)
	}

	res.Algorithm = resp.Algorithm
	if resp.Empty() {
		res.State = StateTerminalEmpty
		res.Message = message(res.Language, msgEmpty)
		return nil
	}
	res.State = StateTerminalResults
	res.Message = message(res.Language, msgResults)
	res.Recommendations = resp.Candidates
	return nil
}

// language resolves the session language, detecting it on a cache miss.
// Detection failures fall back to the configured default.
func (o *Orchestrator) language(ctx context.Context, sessionID, text string) string {
	if cached, ok := o.cachedLanguage(sessionID); ok {
		return cached
	}

	detected, err := o.extractor.DetectLanguage(ctx, text)
	if err != nil {
		// Not cached, so the next turn tries again.
		o.logger.Warn().Err(err).Str("session_id", sessionID).Msg("language detection failed, using default")
		return profile.NormalizeLanguage(o.cfg.DefaultLanguage)
	}
	lang := profile.NormalizeLanguage(detected)

	if o.languages != nil {
		if err := o.languages.Set(sessionID, lang); err != nil {
			o.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to cache session language")
		}
	}
	return lang
}

func (o *Orchestrator) cachedLanguage(sessionID string) (string, bool) {
	if o.languages == nil {
		return "", false
	}
	lang, ok, err := o.languages.Get(sessionID)
	if err != nil {
		o.logger.Warn().Err(err).Str("session_id", sessionID).Msg("language cache lookup failed")
		ok = false
	}
	metrics.RecordLanguageLookup(ok)
	return lang, ok
}
