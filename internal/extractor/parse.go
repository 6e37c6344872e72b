// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/giftmatch/internal/budget"
	"github.com/tomtom215/giftmatch/internal/profile"
)

// budgetHintKey is the optional extra key the model may add next to the
// profile fields.
const budgetHintKey = "budget_hint"

// ParseError reports a model reply that could not be used as a profile
// update. Raw holds the reply after fence stripping.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unusable model reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\s*```$")

// StripCodeFences removes a surrounding Markdown code fence, with or
// without a language tag. Text without a fence is returned trimmed.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ParseExtraction decodes a model reply into an Extraction. The reply must
// be a JSON object whose keys are profile fields or budget_hint.
func ParseExtraction(reply string) (*Extraction, error) {
	raw := StripCodeFences(reply)

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("decode JSON object: %w", err)}
	}
	if fields == nil {
		return nil, &ParseError{Raw: raw, Err: errors.New("reply is not a JSON object")}
	}

	var hint budget.Hint
	if v, ok := fields[budgetHintKey]; ok {
		delete(fields, budgetHintKey)
		if s, isString := v.(string); isString {
			hint = budget.ParseHint(s)
		}
	}

	update, err := profile.ParseUpdate(fields)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &Extraction{Update: update, Hint: hint, Raw: raw}, nil
}
