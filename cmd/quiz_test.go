package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/cmdflash/internal/quiz"
)

var testQuestions = []quiz.Question{
	{ID: "init", Question: "Create a repo", CorrectAnswer: "git init", Options: []string{"git log", "git init", "pwd", "ls"}},
	{ID: "clone", Question: "Copy a repo", CorrectAnswer: "git clone <url>", Options: []string{"git clone <url>", "git init", "pwd", "ls"}, Explanation: "Downloads a repository."},
	{ID: "pwd", Question: "Where am I", CorrectAnswer: "pwd", Options: []string{"ls", "cd ~", "pwd", "git init"}},
}

func TestRunQuiz(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		correct int
	}{
		{"all by number", "2\n1\n3\n", 3},
		{"typed commands", "git init\nGit Clone\nls\n", 2},
		{"skip and out of range", "\n9\npwd\n", 1},
		{"input closes early", "2\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			score := runQuiz(strings.NewReader(tt.input), &out, testQuestions)
			assert.Equal(t, tt.correct, score.Correct)
			assert.Equal(t, len(testQuestions), score.Total)
		})
	}
}

func TestRunQuizOutput(t *testing.T) {
	var out bytes.Buffer
	runQuiz(strings.NewReader("1\n4\n"), &out, testQuestions)

	s := out.String()
	assert.Contains(t, s, "── Question 1/3 ──")
	assert.Contains(t, s, "  2) git init")
	assert.Contains(t, s, "✗ Wrong.")
	assert.Contains(t, s, "Explanation: Downloads a repository.")
	assert.Contains(t, s, "(input closed)")
}
