package checklist

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownItem      = errors.New("unknown checklist item")
	ErrChoiceNotAllowed = errors.New("choice not allowed for item")
)

// Answer is one user-entered response. Label is stamped from the schema so
// the submitted payload stays readable without the schema at hand.
type Answer struct {
	Choice string
	Remark string
	Label  string
}

// AnswerPayload is the wire shape of one answer inside the submission body.
type AnswerPayload struct {
	Choice      string `json:"choice"`
	Remark      string `json:"remark,omitempty"`
	VerboseName string `json:"verbose_name"`
}

// Response accumulates the answers for one form session. It is created
// empty when the form opens and discarded after a successful submit.
type Response struct {
	schema  Schema
	answers map[string]map[string]*Answer
}

func NewResponse(schema Schema) *Response {
	return &Response{
		schema:  schema,
		answers: make(map[string]map[string]*Answer),
	}
}

func (r *Response) answerFor(categoryKey, itemKey string) (*Answer, error) {
	item, ok := r.schema.Item(categoryKey, itemKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownItem, categoryKey, itemKey)
	}
	if r.answers[categoryKey] == nil {
		r.answers[categoryKey] = make(map[string]*Answer)
	}
	answer := r.answers[categoryKey][itemKey]
	if answer == nil {
		answer = &Answer{Label: item.Label}
		r.answers[categoryKey][itemKey] = answer
	}
	return answer, nil
}

// SetChoice upserts the choice for an item, preserving any remark already
// entered for it.
func (r *Response) SetChoice(categoryKey, itemKey, choice string) error {
	if !r.schema.HasChoice(categoryKey, itemKey, choice) {
		if _, ok := r.schema.Item(categoryKey, itemKey); !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownItem, categoryKey, itemKey)
		}
		return fmt.Errorf("%w: %s.%s=%q", ErrChoiceNotAllowed, categoryKey, itemKey, choice)
	}
	answer, err := r.answerFor(categoryKey, itemKey)
	if err != nil {
		return err
	}
	answer.Choice = choice
	return nil
}

// SetRemark upserts the free-text remark for an item, preserving any choice.
// Remarks are always optional, required items included.
func (r *Response) SetRemark(categoryKey, itemKey, remark string) error {
	answer, err := r.answerFor(categoryKey, itemKey)
	if err != nil {
		return err
	}
	answer.Remark = remark
	return nil
}

// Answer returns the current answer for an item, if any.
func (r *Response) Answer(categoryKey, itemKey string) (Answer, bool) {
	if answers, ok := r.answers[categoryKey]; ok {
		if answer, ok := answers[itemKey]; ok {
			return *answer, true
		}
	}
	return Answer{}, false
}

// Validate returns the labels of every required item that has no choice
// yet, in schema declaration order. A nil result means the response is
// complete. Remark content never affects the outcome.
func (r *Response) Validate() []string {
	var missing []string
	for _, cat := range r.schema {
		for _, item := range cat.Items {
			if !item.Schema.Required {
				continue
			}
			answer, ok := r.Answer(cat.Key, item.Key)
			if !ok || answer.Choice == "" {
				missing = append(missing, item.Schema.Label)
			}
		}
	}
	return missing
}

// Payload renders the nested category -> item -> answer structure merged
// into the submission body under the "checklists" key.
func (r *Response) Payload() map[string]map[string]AnswerPayload {
	out := make(map[string]map[string]AnswerPayload, len(r.answers))
	for catKey, items := range r.answers {
		out[catKey] = make(map[string]AnswerPayload, len(items))
		for itemKey, answer := range items {
			out[catKey][itemKey] = AnswerPayload{
				Choice:      answer.Choice,
				Remark:      answer.Remark,
				VerboseName: answer.Label,
			}
		}
	}
	return out
}
