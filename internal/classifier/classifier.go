// Package classifier assigns a category and a set of tags to a
// document from its filename and content using keyword heuristics.
// Classification is pure and deterministic: the same input always
// yields the same output, and internal failures degrade to the
// "general" category rather than propagating.
package classifier

import (
	"regexp"
	"strings"
)

// GeneralCategory is the fallback when no category scores high enough.
const GeneralCategory = "general"

// minCategoryScore is the keyword-occurrence floor a category must
// reach to beat the general fallback.
const minCategoryScore = 2

// category pairs a label with its keyword list. The slice order is the
// declared tie-break priority: the first category reaching the top
// score wins.
type category struct {
	name     string
	keywords []string
}

// categories is the fixed taxonomy in priority order.
var categories = []category{
	{"project_management", []string{"project", "management", "planning", "execution", "monitoring", "control", "pmbok", "agile", "scrum", "waterfall"}},
	{"leadership", []string{"leadership", "leader", "manage", "team", "vision", "strategy", "decision", "influence", "motivation"}},
	{"career_development", []string{"career", "development", "growth", "skill", "learning", "training", "advancement", "goal", "professional"}},
	{"assessment", []string{"assessment", "evaluation", "review", "feedback", "performance", "score", "rating", "measure"}},
	{"process", []string{"process", "procedure", "workflow", "methodology", "framework", "standard", "guideline", "protocol"}},
	{"communication", []string{"communication", "stakeholder", "meeting", "presentation", "report", "documentation", "collaboration"}},
	{"risk_management", []string{"risk", "issue", "problem", "mitigation", "contingency", "threat", "opportunity", "uncertainty"}},
	{"quality", []string{"quality", "standard", "compliance", "audit", "inspection", "verification", "validation", "improvement"}},
	{"resource_management", []string{"resource", "budget", "cost", "schedule", "timeline", "allocation", "capacity", "utilization"}},
	{"best_practices", []string{"best practice", "lesson learned", "recommendation", "guideline", "tip", "advice", "expert"}},
}

// tagVocabulary is the fixed set of domain phrases tested for
// membership. Matching phrases become tags with spaces joined by
// underscores.
var tagVocabulary = []string{
	"project management", "leadership", "career", "development",
	"planning", "execution", "monitoring", "control", "agile", "scrum",
	"risk", "stakeholder", "communication", "team", "budget", "schedule",
	"process", "procedure", "best practice", "methodology", "framework",
	"value", "assessment", "checklist", "resource", "quality", "compliance",
	"strategy", "vision", "goal", "objective", "milestone", "deliverable",
	"meeting", "presentation", "report", "documentation", "collaboration",
	"skill", "learning", "training", "growth", "performance", "feedback",
}

var (
	numberedList = regexp.MustCompile(`\d+\.\s+`)
	bulletList   = regexp.MustCompile(`[-*]\s+`)
	methodTerms  = regexp.MustCompile(`\b(wbs|gantt|kanban|sprint|epic|user story|burndown|velocity|retrospective)\b`)
)

// Classify returns the best-fit category and the tag set for a
// document. filename and content are combined so file names like
// "risk-checklist.txt" contribute signal even for short documents.
func Classify(filename, content string) (string, []string) {
	combined := strings.ToLower(filename) + " " + strings.ToLower(content)
	return Categorize(combined), Tags(combined)
}

// Categorize scores each category by counting keyword occurrences
// (case-insensitive substring matches) in the combined text. The
// highest score wins when it reaches the floor; ties go to the earliest
// category in the taxonomy order.
func Categorize(combined string) string {
	best := GeneralCategory
	bestScore := 0

	for _, cat := range categories {
		score := 0
		for _, keyword := range cat.keywords {
			score += strings.Count(combined, keyword)
		}
		if score >= minCategoryScore && score > bestScore {
			best = cat.name
			bestScore = score
		}
	}
	return best
}

// Tags tests the fixed vocabulary for membership in the combined text
// and adds structural and methodology tags. The result preserves
// vocabulary order so output is deterministic.
func Tags(combined string) []string {
	var tags []string
	seen := make(map[string]bool)

	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, keyword := range tagVocabulary {
		if strings.Contains(combined, keyword) {
			add(strings.ReplaceAll(keyword, " ", "_"))
		}
	}

	// Numbered lists and bullet markers indicate procedural content.
	if numberedList.MatchString(combined) || bulletList.MatchString(combined) {
		add("procedural")
		add("checklist")
	}

	for _, term := range methodTerms.FindAllString(combined, -1) {
		add(strings.ToLower(term))
	}

	return tags
}
