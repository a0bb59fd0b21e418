// Package assistant implements the portal's canned-response helper. It is a
// keyword matcher, not a language model: the first rule whose keywords all
// appear in the question wins.
package assistant

import (
	"strings"

	"go.uber.org/zap"
)

// Rule maps a keyword set to a canned reply.
type Rule struct {
	Keywords []string
	Reply    string
}

// Reply is a matched answer.
type Reply struct {
	Answer  string `json:"answer"`
	Matched bool   `json:"matched"`
}

// Assistant answers portal questions from a fixed rule table.
type Assistant struct {
	rules    []Rule
	fallback string
	logger   *zap.Logger
}

// DefaultRules covers the portal's own surface.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"notice"}, Reply: "Notices are on the home page under the Notices tab. New notices appear at the top."},
		{Keywords: []string{"homework"}, Reply: "Homework is listed under the Homework tab with its subject, teacher and due date."},
		{Keywords: []string{"routine"}, Reply: "The weekly routine is under the Routine tab, organised by day and period."},
		{Keywords: []string{"class", "time"}, Reply: "Class times are under the Class Time tab. Admins can export them as CSV or PDF."},
		{Keywords: []string{"locked"}, Reply: "A lock icon means an administrator has frozen that content. Editing resumes once it is unlocked."},
		{Keywords: []string{"editor"}, Reply: "Editor access is granted by an administrator. Ask your class admin to promote your account."},
		{Keywords: []string{"apply"}, Reply: "Use the student signup form. An administrator reviews every application before the account works."},
		{Keywords: []string{"password"}, Reply: "Contact an administrator to reset your password."},
	}
}

// New constructs an assistant. Empty rules fall back to DefaultRules.
func New(rules []Rule, logger *zap.Logger) *Assistant {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		rules:    rules,
		fallback: "I can help with notices, homework, routines, class times and account questions.",
		logger:   logger,
	}
}

// Ask matches a question against the rule table. Matching is case-insensitive
// and requires every keyword of a rule to appear.
func (a *Assistant) Ask(question string) Reply {
	normalized := strings.ToLower(strings.TrimSpace(question))
	if normalized == "" {
		return Reply{Answer: a.fallback}
	}

	for _, rule := range a.rules {
		if matches(normalized, rule.Keywords) {
			return Reply{Answer: rule.Reply, Matched: true}
		}
	}

	a.logger.Debug("assistant fallback", zap.String("question", normalized))
	return Reply{Answer: a.fallback}
}

func matches(question string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, kw := range keywords {
		if !strings.Contains(question, kw) {
			return false
		}
	}
	return true
}
