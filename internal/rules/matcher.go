package rules

import (
	"path"
	"strings"

	"github.com/structuresh/structure/internal/logging"
	"github.com/woozymasta/pathrules"
	"go.uber.org/zap"
)

// Matcher decides whether a project-relative path is excluded by a compiled
// RuleSet.
type Matcher struct {
	m        *pathrules.Matcher
	patterns []string
}

// Compile turns rs into a Matcher. Patterns the gitignore parser rejects are
// dropped and logged at debug; the remaining patterns keep their order.
func Compile(rs RuleSet, logger *zap.Logger) (*Matcher, error) {
	logger = logging.OrNop(logger)

	var (
		compiled []pathrules.Rule
		kept     []string
	)
	for _, p := range rs.Patterns() {
		parsed, err := pathrules.ParseRulesString(p)
		if err != nil || len(parsed) == 0 {
			// Comments and blank-after-trim lines parse to nothing.
			continue
		}
		for i := range parsed {
			parsed[i].Pattern = anchor(parsed[i].Pattern)
		}
		if _, err := pathrules.NewMatcher(parsed, pathrules.MatcherOptions{}); err != nil {
			logger.Debug("Dropping invalid pattern", zap.String("pattern", p), zap.Error(err))
			continue
		}
		compiled = append(compiled, parsed...)
		kept = append(kept, p)
	}

	m, err := pathrules.NewMatcher(compiled, pathrules.MatcherOptions{DefaultAction: pathrules.ActionInclude})
	if err != nil {
		return nil, err
	}
	return &Matcher{m: m, patterns: kept}, nil
}

// anchor roots a pattern that has a slash before its last character, so
// "build/output" matches only at the project root like git does.
func anchor(pattern string) string {
	if strings.HasPrefix(pattern, "/") || strings.HasPrefix(pattern, "**/") {
		return pattern
	}
	if strings.Contains(strings.TrimSuffix(pattern, "/"), "/") {
		return "/" + pattern
	}
	return pattern
}

// Patterns returns the patterns that survived compilation.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}

// Excluded reports whether rel (slash separated, relative to the project
// root) is excluded. A rule applies when it matches rel itself or any of its
// ancestor directories; of all applying rules the last one decides.
func (m *Matcher) Excluded(rel string) bool {
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "/")
	if rel == "" || rel == "." {
		return false
	}

	best := m.m.Decide(rel, false)
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		res := m.m.Decide(dir, true)
		if res.Matched && res.RuleIndex > best.RuleIndex {
			best = res
		}
	}
	return best.Matched && !best.Included
}
