package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answered question within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("question_id").
			NotEmpty().
			Comment("Catalog question identifier"),
		field.String("passage_id").
			Comment("Owning passage id"),
		field.Int("skill_id").
			Comment("Skill (1-15) the question is tagged with"),
		field.Int("chosen_index").
			Comment("Choice index the student picked, post-shuffle"),
		field.Bool("correct").
			Comment("Whether the chosen answer was correct"),
		field.Int("time_ms").
			Comment("Milliseconds from display to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("skill_id"),
		index.Fields("correct"),
	}
}
