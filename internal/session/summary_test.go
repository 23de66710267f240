package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryAggregatesPerSkill(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	s, err := e.StartPassage("p01")
	require.NoError(t, err)

	// Answer the first question wrong, the rest right.
	wrong := (s.Current().Question.CorrectIndex + 1) % 4
	firstSkill := s.Current().Question.SkillID
	_, err = s.Answer(ctx, wrong, time.Second)
	require.NoError(t, err)
	answerAll(t, s, true)

	sum, err := s.Finish(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Answered)
	assert.Equal(t, 4, sum.Correct)
	assert.Equal(t, 80, sum.ScorePercent)
	assert.Equal(t, "Very Good", sum.Grade)

	var attempted int
	seen := map[int]bool{}
	for _, line := range sum.SkillLines {
		require.False(t, seen[line.SkillID], "duplicate skill line %d", line.SkillID)
		seen[line.SkillID] = true
		attempted += line.Attempted

		if line.SkillID == firstSkill && line.Attempted == 1 {
			assert.True(t, line.Weak, "a 0/1 skill should be flagged weak")
		}
	}
	assert.Equal(t, 5, attempted, "skill lines must cover every answered question")
}

func TestSummaryDurationAndTitle(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	clock := time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }

	s, err := e.StartPassage("p08")
	require.NoError(t, err)
	answerAll(t, s, true)

	clock = clock.Add(7 * time.Minute)
	sum, err := s.Finish(ctx)
	require.NoError(t, err)

	assert.Equal(t, 7*time.Minute, sum.Duration)
	assert.NotEmpty(t, sum.PassageTitle)
	assert.Equal(t, "p08", sum.PassageID)
}
