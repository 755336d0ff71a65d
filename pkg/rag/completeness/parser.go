package completeness

import (
	"regexp"
	"strconv"
	"strings"
)

// Assessment is the parsed form of a completeness response. Score is
// normalized to [0, 1].
type Assessment struct {
	Score           float64
	CoveredAspects  []string
	MissingAspects  []string
	Recommendations []string
}

var scoreRe = regexp.MustCompile(`\b(\d{1,3})\b`)

const listMarkers = "-•0123456789. "

// Parse extracts the score and section lists from free-form assessment text.
// It tolerates anything the model produces and never fails: a missing score
// defaults to 50/100 and unrecognized lines are skipped.
func Parse(text string) *Assessment {
	lines := strings.Split(text, "\n")

	a := &Assessment{
		Score:           extractScore(lines),
		CoveredAspects:  []string{},
		MissingAspects:  []string{},
		Recommendations: []string{},
	}

	section := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if s := identifySection(line); s != "" {
			section = s
			continue
		}
		if !isListItem(line) {
			continue
		}

		item := strings.TrimSpace(strings.TrimLeft(line, listMarkers))
		switch section {
		case "covered":
			a.CoveredAspects = append(a.CoveredAspects, item)
		case "missing":
			a.MissingAspects = append(a.MissingAspects, item)
		case "recommendations":
			a.Recommendations = append(a.Recommendations, item)
		}
	}

	return a
}

func extractScore(lines []string) float64 {
	score := 50.0
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), "score") {
			continue
		}
		if m := scoreRe.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			score = float64(n)
			break
		}
	}

	normalized := score / 100.0
	if normalized > 1 {
		return 1
	}
	if normalized < 0 {
		return 0
	}
	return normalized
}

func identifySection(line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "covered"):
		return "covered"
	case strings.Contains(lower, "missing"), strings.Contains(lower, "unclear"):
		return "missing"
	case strings.Contains(lower, "recommendation"):
		return "recommendations"
	}
	return ""
}

func isListItem(line string) bool {
	if line == "" {
		return false
	}
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") ||
		(line[0] >= '0' && line[0] <= '9')
}
