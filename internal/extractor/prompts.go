// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package extractor

import (
	"fmt"

	"github.com/tomtom215/giftmatch/internal/profile"
)

const languagePrompt = "Identify the language of the user's message. " +
	"Reply with only its two-letter ISO 639-1 code, for example en or tr."

var systemPrompts = map[string]string{
	profile.LangEnglish: "You complete a gift preference table from the user's message. " +
		"Do not change values that are already filled in. " +
		"Return only the table as a JSON object with true or false for boolean fields. " +
		"Use null for anything the user did not mention. " +
		"If the user describes the budget only in words such as cheap or luxury, " +
		"add a \"budget_hint\" key with that word.",
	profile.LangTurkish: "Sen bir asistan olarak kullanıcı girdisine göre tabloyu tamamlıyorsun. " +
		"Daha önce doldurulmuş bilgileri değiştirme. " +
		"JSON formatında sadece tabloyu döndür. " +
		"Boolean değişkenleri true veya false olarak döndür, kullanıcının bahsetmediği alanlar için null kullan. " +
		"Kullanıcı bütçeyi sadece ucuz veya lüks gibi kelimelerle belirtirse \"budget_hint\" anahtarına bu kelimeyi yaz.",
}

var userPromptFormats = map[string]string{
	profile.LangEnglish: "The user wrote: %s\n\nCurrent table:\n%s\n\n" +
		"Update this table from the user's message and only fill in missing values. " +
		"Return only the updated table as JSON.",
	profile.LangTurkish: "Kullanıcıdan şu giriş alındı: %s\n\nMevcut doldurulmuş tablo:\n%s\n\n" +
		"Bu tabloyu kullanıcı bilgisine göre güncelle ve sadece eksik bilgileri tamamla. " +
		"JSON formatında sadece güncellenmiş tabloyu döndür.",
}

func systemPrompt(lang string) string {
	return systemPrompts[profile.NormalizeLanguage(lang)]
}

func userPrompt(lang, userText, table string) string {
	return fmt.Sprintf(userPromptFormats[profile.NormalizeLanguage(lang)], userText, table)
}
