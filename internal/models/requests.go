// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package models

import (
	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// ChatFillRequest is one free-text turn. PreviousFilledData and
// BudgetAsked are echoed back from the previous response.
type ChatFillRequest struct {
	UserInput          string                 `json:"user_input" validate:"required,max=2000"`
	PreviousFilledData map[string]interface{} `json:"previous_filled_data"`
	BudgetAsked        bool                   `json:"budget_asked"`
	SessionID          string                 `json:"session_id" validate:"omitempty,max=128"`
}

// ChatReviseRequest explicitly changes stored answers. Changes uses the
// filled_table keys; a true flag in an exclusive group replaces the
// current selection. ExcludeIDs are products already shown to the user.
type ChatReviseRequest struct {
	FilledTable map[string]interface{} `json:"filled_table"`
	Changes     map[string]interface{} `json:"changes" validate:"required,min=1"`
	BudgetAsked bool                   `json:"budget_asked"`
	SessionID   string                 `json:"session_id" validate:"omitempty,max=128"`
	ExcludeIDs  []int64                `json:"exclude_ids" validate:"max=200,dive,gt=0"`
}

// BlindTestRequest is the slot form used by the blind test. Interests the
// catalog has no column for are ignored by the feature mapper.
type BlindTestRequest struct {
	Gender    string   `json:"gender" validate:"required,gender"`
	Age       string   `json:"age" validate:"required,age_bracket"`
	Special   string   `json:"special" validate:"required,occasion"`
	Interests []string `json:"interests" validate:"max=14"`
	MinBudget *float64 `json:"min_budget" validate:"omitempty,gte=0"`
	MaxBudget *float64 `json:"max_budget" validate:"omitempty,gte=0"`
}

// SlotInput converts the form to the feature mapper input.
func (r *BlindTestRequest) SlotInput() recommend.SlotInput {
	return recommend.SlotInput{Age: r.Age, Gender: r.Gender, Occasion: r.Special, Interests: r.Interests}
}

// CheckBudget rejects an inverted range with the profile validation error.
func (r *BlindTestRequest) CheckBudget() error {
	p := profile.Profile{MinBudget: r.MinBudget, MaxBudget: r.MaxBudget}
	return p.CheckBudget()
}

// BlindTestSelection is one product the user rated.
type BlindTestSelection struct {
	Algorithm         string `json:"algorithm" validate:"required,algorithm|oneof=algorithm_1 algorithm_2 algorithm_3"`
	ProductID         int64  `json:"product_id" validate:"required,gt=0"`
	RecommendedOrder  int    `json:"recommended_order" validate:"gte=1,lte=50"`
	IsSelected        bool   `json:"is_selected"`
	BadRecommendation bool   `json:"bad_recommendation"`
}

// BlindTestSubmitRequest stores a completed blind test.
type BlindTestSubmitRequest struct {
	Email             string               `json:"email" validate:"required,email,max=254"`
	SessionParameters BlindTestRequest     `json:"session_parameters"`
	Selections        []BlindTestSelection `json:"selections" validate:"required,min=1,max=60,dive"`
}

// SelectedByAlgorithm counts the selected products per algorithm label.
func (r *BlindTestSubmitRequest) SelectedByAlgorithm() map[string]int {
	counts := make(map[string]int)
	for _, s := range r.Selections {
		if s.IsSelected {
			counts[s.Algorithm]++
		}
	}
	return counts
}
