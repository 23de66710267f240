package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/readhero/ent"
	"github.com/abhisek/readhero/ent/answerevent"
)

// eventRepo implements EventRepo using the ent client.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetQuestionID(data.QuestionID).
		SetPassageID(data.PassageID).
		SetSkillID(data.SkillID).
		SetChosenIndex(data.ChosenIndex).
		SetCorrect(data.Correct).
		SetTimeMs(data.TimeMs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetMode(data.Mode).
		SetPassageID(data.PassageID).
		SetSkillID(data.SkillID).
		SetQuestionsServed(data.QuestionsServed).
		SetCorrectAnswers(data.CorrectAnswers).
		SetScorePercent(data.ScorePercent).
		SetDurationSecs(data.DurationSecs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) SkillAccuracy(ctx context.Context, skillID int) (float64, int, error) {
	total, err := r.client.AnswerEvent.Query().
		Where(answerevent.SkillIDEQ(skillID)).
		Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count answers: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}

	correct, err := r.client.AnswerEvent.Query().
		Where(answerevent.SkillIDEQ(skillID), answerevent.CorrectEQ(true)).
		Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count correct answers: %w", err)
	}
	return float64(correct) / float64(total), total, nil
}

func (r *eventRepo) LastActive(ctx context.Context) (time.Time, error) {
	ev, err := r.client.AnswerEvent.Query().
		Order(ent.Desc(answerevent.FieldTimestamp)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("query last answer: %w", err)
	}
	return ev.Timestamp, nil
}
