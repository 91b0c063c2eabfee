package gemini

import (
	"fmt"
	"strings"

	"github.com/agrischeme/backend/internal/core/domain"
)

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"ml": "Malayalam",
}

func buildAdvisoryPrompt(question domain.AdvisoryQuestion) string {
	language, ok := languageNames[question.Language]
	if !ok {
		language = languageNames[domain.DefaultLanguage]
	}

	var b strings.Builder
	b.WriteString("You are an expert agricultural advisor for Indian farmers. ")
	b.WriteString("Answer questions about government schemes, crops, and farming practices. ")
	b.WriteString("Keep answers practical and concise. If a question is about scheme ")
	b.WriteString("eligibility, rely only on the provided scheme details.\n\n")

	if context := strings.TrimSpace(question.SchemeContext); context != "" {
		b.WriteString("Scheme details:\n")
		b.WriteString(context)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Respond in %s.\n\nFarmer's question: %s", language, question.Question)
	return b.String()
}
