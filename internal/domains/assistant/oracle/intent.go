package oracle

import (
	"context"
	"fmt"
	"time"

	"aula/infras/gemini"
	"aula/infras/otel"
	"aula/internal/domains/assistant/model"
	"aula/shared/constant"
)

//go:generate go run go.uber.org/mock/mockgen -source=intent.go -destination=mocks/intent_mock.go -package=oracle_mocks

const intentPromptTemplate = `You are the scheduling assistant of a college activity hall. Today is %s (%s).

A user wrote: %q

Interpret the request and answer with a single JSON object:

{
  "explanation": "one or two sentences restating how you understood the request",
  "intent": {
    "event_name": "short name for the event, empty string if none given",
    "duration_minutes": 60,
    "target_semesters": ["Sem 3"],
    "weekdays": ["Friday"]
  }
}

Rules:
- duration_minutes defaults to 60 when the user gives no duration.
- target_semesters uses tags like "Sem 1" .. "Sem 8", or ["All"] when the event concerns everyone or no cohort is named.
- weekdays lists full English weekday names only when the user constrains the day, otherwise an empty list.
- Return only the JSON object.`

// Interpreter parses a free-form scheduling request into a structured intent.
type Interpreter interface {
	Interpret(ctx context.Context, message string, reference time.Time) (model.Interpretation, error)
}

type geminiInterpreter struct {
	client gemini.Client
	otel   otel.Otel
}

func NewInterpreter(client gemini.Client, ot otel.Otel) Interpreter {
	return &geminiInterpreter{
		client: client,
		otel:   ot,
	}
}

func (i *geminiInterpreter) Interpret(ctx context.Context, message string, reference time.Time) (out model.Interpretation, err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelExternalScopeName, "Interpreter.Interpret")
	defer scope.End()
	defer scope.TraceIfError(err)

	prompt := fmt.Sprintf(intentPromptTemplate,
		reference.Format(constant.DayFormat), reference.Weekday().String(), message)

	if err = i.client.GenerateJSON(ctx, prompt, nil, &out); err != nil {
		return model.Interpretation{}, err
	}

	return out, nil
}
