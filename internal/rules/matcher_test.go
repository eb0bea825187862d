package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/structuresh/structure/internal/config"
)

func compile(t *testing.T, patterns ...string) *Matcher {
	t.Helper()
	m, err := Compile(New(patterns...), nil)
	require.NoError(t, err)
	return m
}

func TestMatcherDefaults(t *testing.T) {
	m := compile(t, config.DefaultPackaging().DefaultRules...)

	tests := []struct {
		path     string
		excluded bool
	}{
		{"app.py", false},
		{"notes.txt", false},
		{"venv/lib.py", true},
		{"venv/lib/site.py", true},
		{"env/bin/python", true},
		{"pkg/mod.pyc", true},
		{"node_modules/x/index.js", true},
		{"structure_source.zip", true},
		{"sub/.DS_Store", true},
		{"npm-debug.log.1", true},
		{"static/index.html", false},
		{"environment.py", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.excluded, m.Excluded(tt.path), "Excluded(%q)", tt.path)
	}
}

func TestMatcherScenario(t *testing.T) {
	ignored := New("*.txt")
	included := New("*.txt")
	rs := Combine(New(config.DefaultPackaging().DefaultRules...), ignored, included)

	m, err := Compile(rs, nil)
	require.NoError(t, err)

	assert.False(t, m.Excluded("app.py"))
	assert.False(t, m.Excluded("notes.txt"))
	assert.True(t, m.Excluded("venv/lib.py"))
}

func TestMatcherAnchoredAndDirOnly(t *testing.T) {
	m := compile(t, "/build", "logs/", "docs/**/*.md")

	assert.True(t, m.Excluded("build/out.bin"))
	assert.False(t, m.Excluded("src/build/out.bin"))
	assert.True(t, m.Excluded("logs/today.txt"))
	assert.True(t, m.Excluded("a/logs/today.txt"))
	assert.True(t, m.Excluded("docs/guide/intro.md"))
	assert.False(t, m.Excluded("docs/guide/intro.txt"))
}

func TestMatcherMiddleSlashAnchorsToRoot(t *testing.T) {
	m := compile(t, "build/output", "docs/**/*.md", "**/cache/tmp", "!keep/this/file.txt", "keep/")

	tests := []struct {
		path     string
		excluded bool
	}{
		{"build/output/x.bin", true},
		{"src/build/output/x.bin", false},
		{"docs/a/b.md", true},
		{"site/docs/a/b.md", false},
		{"cache/tmp/a", true},
		{"deep/cache/tmp/a", true},
		{"keep/other.txt", true},
		{"lib/keep/other.txt", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.excluded, m.Excluded(tt.path), "Excluded(%q)", tt.path)
	}
	assert.Equal(t, []string{"build/output", "docs/**/*.md", "**/cache/tmp", "!keep/this/file.txt", "keep/"}, m.Patterns())
}

func TestMatcherNegationLastWins(t *testing.T) {
	m := compile(t, "*.log", "!keep.log")

	assert.True(t, m.Excluded("debug.log"))
	assert.False(t, m.Excluded("keep.log"))

	m = compile(t, "!keep.log", "*.log")
	assert.True(t, m.Excluded("keep.log"))
}

func TestMatcherDropsInvalidPatterns(t *testing.T) {
	m := compile(t, "/", "*.tmp", "# comment")

	assert.Equal(t, []string{"*.tmp"}, m.Patterns())
	assert.True(t, m.Excluded("a.tmp"))
	assert.False(t, m.Excluded("a.txt"))
}

func TestMatcherEmptyRuleSet(t *testing.T) {
	m := compile(t)
	assert.False(t, m.Excluded("anything/at/all.go"))
	assert.False(t, m.Excluded(""))
}
