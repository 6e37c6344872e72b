// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package profile

import "strings"

// Slot is one dimension tracked for completeness.
type Slot string

const (
	SlotAge       Slot = "age"
	SlotGender    Slot = "gender"
	SlotOccasion  Slot = "occasion"
	SlotInterests Slot = "interests"
	SlotBudget    Slot = "budget"
)

// Supported prompt languages. Anything else falls back to LangEnglish.
const (
	LangEnglish = "en"
	LangTurkish = "tr"
)

var slotPrompts = map[string]map[Slot]string{
	LangEnglish: {
		SlotAge:       "Could you tell me the age range of the person?",
		SlotGender:    "What is the gender of the person you are buying the gift for?",
		SlotOccasion:  "Is this gift for a special day? (Birthday, anniversary, etc.)",
		SlotInterests: "Could you share a few of the person's interests? (For example sports, music, technology, etc.)",
		SlotBudget:    "Do you have a budget in mind? A range or an approximate amount is fine.",
	},
	LangTurkish: {
		SlotAge:       "Yaş aralığını belirtir misiniz?",
		SlotGender:    "Hediye alacağınız kişinin cinsiyeti nedir?",
		SlotOccasion:  "Bu hediye özel bir gün için mi? (Doğum günü, yıl dönümü vb.)",
		SlotInterests: "Kişinin ilgi alanlarından birkaçını paylaşır mısınız? (Örneğin, spor, müzik, teknoloji vb.)",
		SlotBudget:    "Aklınızda bir bütçe var mı? Bir aralık ya da yaklaşık bir tutar yeterli.",
	},
}

// Prompt returns the follow-up question for the slot in lang.
func (s Slot) Prompt(lang string) string {
	return slotPrompts[NormalizeLanguage(lang)][s]
}

// NormalizeLanguage maps a detected language tag ("tr", "tr-TR",
// "turkish") onto a supported prompt language.
func NormalizeLanguage(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	if strings.HasPrefix(t, "tr") || t == "turkish" {
		return LangTurkish
	}
	return LangEnglish
}
