// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package conversation

import "github.com/tomtom215/giftmatch/internal/profile"

type messageKey int

const (
	msgNeedMore messageKey = iota
	msgRephrase
	msgEmpty
	msgResults
)

var messages = map[string]map[messageKey]string{
	profile.LangEnglish: {
		msgNeedMore: "Could you share a few more details? ",
		msgRephrase: "Sorry, I could not understand that. Could you say it another way?",
		msgEmpty:    "No products matched these criteria. Shall we try a broader search?",
		msgResults:  "Here are some gift ideas!",
	},
	profile.LangTurkish: {
		msgNeedMore: "Daha fazla detay verebilir misiniz? ",
		msgRephrase: "Üzgünüm, bunu anlayamadım. Farklı bir şekilde ifade edebilir misiniz?",
		msgEmpty:    "Bu kriterlere uygun ürün bulunamadı, daha genel bir filtreleme yapmayı deneyelim mi?",
		msgResults:  "Ürün önerileri oluşturuldu!",
	},
}

func message(lang string, key messageKey) string {
	return messages[profile.NormalizeLanguage(lang)][key]
}

// slotQuestion is the follow-up for a missing slot, prefixed with the
// request for more detail.
func slotQuestion(lang string, slot profile.Slot) string {
	return message(lang, msgNeedMore) + slot.Prompt(lang)
}
