package api

import (
	"fmt"
	"math/rand"
	"strings"
)

// toneTemplates maps the built-in tones to their rewrite instructions. Tones
// outside this map get the generic template with the tone name interpolated.
var toneTemplates = map[string]string{
	"clarity":   "Reword the following text to be clearer and more concise. Remove unnecessary words and simplify without losing meaning.",
	"friendly":  "Reword the following text to sound friendly, warm, and approachable. Maintain a conversational feel while keeping it clear.",
	"formal":    "Reword the following text in a more formal and professional tone. Avoid contractions, and use polite, business-friendly language.",
	"gen_z":     "Reword the following text to sound like Gen Z language. Use modern internet slang, casual tone, abbreviations, and appropriate emojis. Make it sound authentic but still understandable.",
	"executive": "Reword the following text for executive-level communication. Be direct, authoritative, and focus on key points. Use decisive language.",
	"creative":  "Reword the following text to be creative and imaginative. Use expressive language, metaphors, or unique perspectives to make it engaging.",
}

// surpriseTones is the pool SurpriseTone draws from.
var surpriseTones = []string{"clarity", "friendly", "formal", "gen_z", "executive", "creative"}

// PromptForTone builds the rewrite prompt for a tone. Unknown tones fall back
// to a generic instruction naming the tone, so custom tones work unchanged.
func PromptForTone(tone, text string) string {
	if tmpl, ok := toneTemplates[tone]; ok {
		return fmt.Sprintf("%s\n\nText:\n%q", tmpl, text)
	}
	return fmt.Sprintf("Reword the following text to sound more %s. Keep the original meaning, improve the flow, and make it natural for human readers.\n\nText:\n%q", tone, text)
}

// SurpriseTone picks a random built-in tone for the surprise-me feature.
func SurpriseTone() string {
	return surpriseTones[rand.Intn(len(surpriseTones))]
}

// BattlePrompt asks for two distinct rewrites labeled Version A and Version B.
func BattlePrompt(text string) string {
	return fmt.Sprintf("Generate two distinct rewrites of the following text with slightly different structure or tone. Keep core meaning the same. Return them as: Version A and Version B.\n\nText:\n%q", text)
}

// CustomTonePrompt rewrites text in the style of a reference sample.
func CustomTonePrompt(referenceText, textToRewrite string) string {
	return fmt.Sprintf("Use the writing style from the reference sample below as a tone guide. Reword the second text to match this style, keeping the meaning intact.\n\nReference Style:\n%q\n\nText to Reword:\n%q", referenceText, textToRewrite)
}

// ParseBattleText splits a raw completion on its "Version A"/"Version B"
// markers. A missing side gets its fixed fallback string instead of failing
// the whole battle.
func ParseBattleText(raw string) BattleResult {
	res := BattleResult{
		VersionA: FallbackVersionA,
		VersionB: FallbackVersionB,
	}

	ai := strings.Index(raw, "Version A")
	bi := strings.Index(raw, "Version B")

	if ai >= 0 {
		a := raw[ai+len("Version A"):]
		if bi > ai {
			a = raw[ai+len("Version A") : bi]
		}
		if v := trimMarker(a); v != "" {
			res.VersionA = v
		}
	}
	if bi >= 0 {
		if v := trimMarker(raw[bi+len("Version B"):]); v != "" {
			res.VersionB = v
		}
	}
	return res
}

// trimMarker strips the ":" left over from a "Version A:" label plus
// surrounding whitespace.
func trimMarker(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ":")
	return strings.TrimSpace(s)
}
