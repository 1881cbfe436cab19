package prompts

import "github.com/BerylCAtieno/legal-assistant-api/internal/models"

// ChatMessages returns the system prompt for analysisType, the last
// HistoryWindow turns of history in their original order, and the new user
// message. Missing roles default to user; roles are otherwise passed through.
func (c *Catalog) ChatMessages(analysisType string, history []models.Message, message string) []models.Message {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{
		Role:    models.RoleSystem,
		Content: c.Resolve(analysisType).SystemPrompt,
	})

	for _, m := range history {
		role := m.Role
		if role == "" {
			role = models.RoleUser
		}
		messages = append(messages, models.Message{Role: role, Content: m.Content})
	}

	return append(messages, models.Message{Role: models.RoleUser, Content: message})
}

// DocumentPrompt embeds documentText, verbatim, after the instruction for
// analysisType.
func (c *Catalog) DocumentPrompt(analysisType, documentText string) string {
	return c.Resolve(analysisType).DocumentPrompt + "\n\n" + documentText
}

// DocumentMessages is the two-message conversation used for document analysis.
func (c *Catalog) DocumentMessages(analysisType, documentText string) []models.Message {
	return []models.Message{
		{Role: models.RoleSystem, Content: c.documentSystemPrompt},
		{Role: models.RoleUser, Content: c.DocumentPrompt(analysisType, documentText)},
	}
}
