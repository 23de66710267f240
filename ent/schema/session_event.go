package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records the outcome of a completed play-through.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Unique().
			Comment("UUID assigned at session start"),
		field.String("mode").
			NotEmpty().
			Comment("practice, daily, exam, or drill"),
		field.String("passage_id").
			Comment("Passage played; empty for skill drills"),
		field.Int("skill_id").
			Comment("Requested skill for drill sessions, 0 otherwise"),
		field.Int("questions_served").
			Comment("Questions answered before the session finished"),
		field.Int("correct_answers").
			Comment("Correct answers among those served"),
		field.Int("score_percent").
			Comment("Final score percentage"),
		field.Int("duration_secs").
			Comment("Wall-clock session length"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("mode"),
	}
}
