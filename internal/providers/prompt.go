package providers

import (
	"fmt"
	"strings"
)

// systemInstruction pins the model to schema-only output.
const systemInstruction = "Only produce a JSON object that satisfies the provided schema."

// BuildPrompt renders the fixed instruction prompt for a direct model
// call. The wording mirrors what the backend under test sends to its own
// model, so both provider kinds are graded on the same task.
func BuildPrompt(symptoms, familyHistory string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "A user reports the following symptoms: %s\n", symptoms)
	if strings.TrimSpace(familyHistory) != "" {
		fmt.Fprintf(&sb, "Known family medical history relevant to risk factors: %s\n", familyHistory)
	}

	sb.WriteString("You are a healthcare-only assistant. Stay strictly on medical/symptoms context. ")
	sb.WriteString("If the user asks for unrelated topics (e.g., coding), politely refuse. Never include insults or abusive language. ")
	sb.WriteString("Consider family history if provided, but do NOT over-index on it. Return only a JSON object with the exact keys:\n")
	sb.WriteString("1. \"probable_conditions\": a list of 2–5 likely conditions (strings).\n")
	sb.WriteString("2. \"recommendations\": a single string with actionable steps separated by semicolons, including red-flag warnings and when to seek in-person care.\n")
	sb.WriteString("3. \"disclaimer\": a short educational safety note.\n")
	sb.WriteString("Do not include any text outside the JSON object.")

	return sb.String()
}
