// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/abhisek/readhero/ent/answerevent"
	"github.com/abhisek/readhero/ent/schema"
	"github.com/abhisek/readhero/ent/sessionevent"
	"github.com/abhisek/readhero/ent/staterecord"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	answereventMixin := schema.AnswerEvent{}.Mixin()
	answereventMixinFields0 := answereventMixin[0].Fields()
	_ = answereventMixinFields0
	answereventFields := schema.AnswerEvent{}.Fields()
	_ = answereventFields
	// answereventDescTimestamp is the schema descriptor for timestamp field.
	answereventDescTimestamp := answereventMixinFields0[1].Descriptor()
	// answerevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	answerevent.DefaultTimestamp = answereventDescTimestamp.Default.(func() time.Time)
	// answereventDescSessionID is the schema descriptor for session_id field.
	answereventDescSessionID := answereventFields[0].Descriptor()
	// answerevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	answerevent.SessionIDValidator = answereventDescSessionID.Validators[0].(func(string) error)
	// answereventDescQuestionID is the schema descriptor for question_id field.
	answereventDescQuestionID := answereventFields[1].Descriptor()
	// answerevent.QuestionIDValidator is a validator for the "question_id" field. It is called by the builders before save.
	answerevent.QuestionIDValidator = answereventDescQuestionID.Validators[0].(func(string) error)
	sessioneventMixin := schema.SessionEvent{}.Mixin()
	sessioneventMixinFields0 := sessioneventMixin[0].Fields()
	_ = sessioneventMixinFields0
	sessioneventFields := schema.SessionEvent{}.Fields()
	_ = sessioneventFields
	// sessioneventDescTimestamp is the schema descriptor for timestamp field.
	sessioneventDescTimestamp := sessioneventMixinFields0[1].Descriptor()
	// sessionevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	sessionevent.DefaultTimestamp = sessioneventDescTimestamp.Default.(func() time.Time)
	// sessioneventDescSessionID is the schema descriptor for session_id field.
	sessioneventDescSessionID := sessioneventFields[0].Descriptor()
	// sessionevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	sessionevent.SessionIDValidator = sessioneventDescSessionID.Validators[0].(func(string) error)
	// sessioneventDescMode is the schema descriptor for mode field.
	sessioneventDescMode := sessioneventFields[1].Descriptor()
	// sessionevent.ModeValidator is a validator for the "mode" field. It is called by the builders before save.
	sessionevent.ModeValidator = sessioneventDescMode.Validators[0].(func(string) error)
	staterecordFields := schema.StateRecord{}.Fields()
	_ = staterecordFields
	// staterecordDescKey is the schema descriptor for key field.
	staterecordDescKey := staterecordFields[0].Descriptor()
	// staterecord.KeyValidator is a validator for the "key" field. It is called by the builders before save.
	staterecord.KeyValidator = staterecordDescKey.Validators[0].(func(string) error)
	// staterecordDescUpdatedAt is the schema descriptor for updated_at field.
	staterecordDescUpdatedAt := staterecordFields[2].Descriptor()
	// staterecord.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	staterecord.DefaultUpdatedAt = staterecordDescUpdatedAt.Default.(func() time.Time)
	// staterecord.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	staterecord.UpdateDefaultUpdatedAt = staterecordDescUpdatedAt.UpdateDefault.(func() time.Time)
}
