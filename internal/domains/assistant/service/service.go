package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"aula/infras/otel"
	"aula/internal/domains/assistant/model"
	"aula/internal/domains/assistant/model/dto"
	"aula/internal/domains/assistant/oracle"
	reservationModel "aula/internal/domains/reservation/model"
	scheduleService "aula/internal/domains/schedule/service"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

// Assistant turns free-form scheduling requests into interpreted intents
// with concrete slot suggestions attached.
type Assistant interface {
	Plan(ctx context.Context, req dto.PlanRequest) (dto.PlanResponse, error)
}

type assistantImpl struct {
	interpreter oracle.Interpreter
	schedule    scheduleService.Schedule
	otel        otel.Otel
}

func NewAssistant(interpreter oracle.Interpreter, schedule scheduleService.Schedule, ot otel.Otel) Assistant {
	return &assistantImpl{
		interpreter: interpreter,
		schedule:    schedule,
		otel:        ot,
	}
}

// Plan interprets the message, fills in defaults for anything the user left
// unsaid, and searches for matching openings. The oracle's answer is
// advisory; only the slot search consults real calendar data.
func (s *assistantImpl) Plan(ctx context.Context, req dto.PlanRequest) (out dto.PlanResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Assistant.Plan")
	defer scope.End()
	defer scope.TraceIfError(err)

	reference := timezone.Now()

	if req.Reference != constant.Empty {
		parsed, parseErr := time.Parse(constant.DateFormat, req.Reference)
		if parseErr != nil {
			return dto.PlanResponse{}, failure.BadRequestFromString("reference must be an RFC 3339 timestamp") //nolint:wrapcheck
		}

		reference = timezone.ToAppTime(parsed)
	}

	interpretation, err := s.interpreter.Interpret(ctx, req.Message, reference)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	intent := applyIntentDefaults(interpretation.Intent)

	weekdays := make([]time.Weekday, 0, len(intent.Weekdays))

	for _, name := range intent.Weekdays {
		day, parseErr := timezone.ParseWeekday(name)
		if parseErr != nil {
			log.Warn().Str("weekday", name).Msg("Ignoring unparseable weekday from intent oracle")

			continue
		}

		weekdays = append(weekdays, day)
	}

	slots, err := s.schedule.SuggestSlots(
		ctx, reference, intent.DurationMinutes,
		reservationModel.AudienceFilter(intent.TargetSemesters), weekdays)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	return dto.PlanResponse{
		Explanation:     interpretation.Explanation,
		EventName:       intent.EventName,
		DurationMinutes: intent.DurationMinutes,
		TargetAudience:  intent.TargetSemesters,
		Suggestions:     slots,
	}, nil
}

func applyIntentDefaults(intent model.Intent) model.Intent {
	if intent.DurationMinutes <= 0 {
		intent.DurationMinutes = constant.DefaultDurationMinutes
	}

	if len(intent.TargetSemesters) == 0 {
		intent.TargetSemesters = []string{constant.AudienceAll}
	}

	return intent
}
