package summary

import (
	"encoding/json"
	"fmt"
	"time"

	"worklog/internal/core"
)

// promptEntry is the per-item payload sent to the collaborator: everything
// the model needs, nothing it doesn't (no internal ids).
type promptEntry struct {
	CaseID      string `json:"caseId"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

const promptInstruction = `Analyze the following work log for this week.
Provide a professional, concise summary of the key accomplishments,
grouping work by category where appropriate.
Highlight any major cases worked on.`

// BuildPrompt serializes the week's items with resolved category names and
// human-readable dates under the fixed summarization instruction.
func BuildPrompt(items []core.WorkItem, categories []core.Category) (string, error) {
	entries := make([]promptEntry, len(items))
	for i, it := range items {
		name := core.UnknownCategoryName
		if c, ok := core.CategoryByID(categories, it.CategoryID); ok {
			name = c.Name
		}
		entries[i] = promptEntry{
			CaseID:      it.CaseID,
			Description: it.Description,
			Category:    name,
			Date:        time.UnixMilli(it.Timestamp).Format("Mon Jan 2 2006"),
		}
	}

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode work log payload: %w", err)
	}

	return promptInstruction + "\n\nWork Log Data:\n" + string(payload), nil
}
