package oracle

import (
	"context"

	"aula/infras/gemini"
	"aula/infras/otel"
	"aula/internal/domains/timetable/model"
	"aula/shared/constant"
)

//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/extractor_mock.go -package=oracle_mocks

const extractionPrompt = `You are an expert timetable parser. Analyze the attached class timetable document and return a single JSON object with this exact structure:

{
  "metadata": {
    "semester": "the semester named in the document, e.g. '4th Semester'",
    "branch": "the branch or department, e.g. 'CSE'"
  },
  "events": [
    {
      "summary": "subject or activity name",
      "day": "full English weekday name, e.g. 'Monday'",
      "start_time": "24-hour HH:MM",
      "end_time": "24-hour HH:MM",
      "description": "room, lecturer or other details, empty string if none"
    }
  ]
}

Rules:
- One event per subject per weekday cell. Merge consecutive cells of the same subject into one event.
- Skip breaks, lunch and empty cells.
- If the semester or branch cannot be determined, use "Unknown Semester" or "Unknown".
- Return only the JSON object, no commentary.`

// Extractor turns a raw timetable document into structured events. The
// output is advisory until an admin confirms a sync; nothing here touches
// the calendar.
type Extractor interface {
	ExtractTimetable(ctx context.Context, document []byte, mimeType string) (model.Timetable, error)
}

type geminiExtractor struct {
	client gemini.Client
	otel   otel.Otel
}

func NewExtractor(client gemini.Client, ot otel.Otel) Extractor {
	return &geminiExtractor{
		client: client,
		otel:   ot,
	}
}

func (e *geminiExtractor) ExtractTimetable(ctx context.Context, document []byte, mimeType string) (out model.Timetable, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelExternalScopeName, "Extractor.ExtractTimetable")
	defer scope.End()
	defer scope.TraceIfError(err)

	doc := &gemini.InlineDocument{
		MIMEType: mimeType,
		Data:     document,
	}

	if err = e.client.GenerateJSON(ctx, extractionPrompt, doc, &out); err != nil {
		return model.Timetable{}, err
	}

	if out.Events == nil {
		out.Events = []model.Event{}
	}

	return out, nil
}
