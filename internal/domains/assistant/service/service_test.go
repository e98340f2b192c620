package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMock "aula/infras/otel/mocks"
	"aula/internal/domains/assistant/model"
	"aula/internal/domains/assistant/model/dto"
	oracleMock "aula/internal/domains/assistant/oracle/mocks"
	"aula/internal/domains/assistant/service"
	reservationModel "aula/internal/domains/reservation/model"
	"aula/internal/domains/reservation/repository"
	scheduleService "aula/internal/domains/schedule/service"
	"aula/shared/timezone"
)

func TestPlanInterpretsAndSuggests(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := oracleMock.NewMockInterpreter(ctrl)
	store := repository.NewMemoryStore()
	ot := otelMock.NewOtel()

	svc := service.NewAssistant(interpreter, scheduleService.NewSchedule(store, ot), ot)

	// Monday.
	reference := time.Date(2026, 1, 5, 8, 0, 0, 0, timezone.GetLocation())

	interpreter.EXPECT().
		Interpret(gomock.Any(), "book two hours for the Sem 3 coding contest on Friday", gomock.Any()).
		Return(model.Interpretation{
			Explanation: "Looking for a 2 hour slot on Friday for the Sem 3 coding contest.",
			Intent: model.Intent{
				EventName:       "Coding contest",
				DurationMinutes: 120,
				TargetSemesters: []string{"Sem 3"},
				Weekdays:        []string{"Friday"},
			},
		}, nil)

	out, err := svc.Plan(context.Background(), dto.PlanRequest{
		Message:   "book two hours for the Sem 3 coding contest on Friday",
		Reference: reference.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, "Coding contest", out.EventName)
	assert.Equal(t, 120, out.DurationMinutes)
	assert.Equal(t, []string{"Sem 3"}, out.TargetAudience)
	require.Len(t, out.Suggestions, 2)

	friday := time.Date(2026, 1, 9, 9, 0, 0, 0, timezone.GetLocation())
	assert.Equal(t, friday.Format(time.RFC3339), out.Suggestions[0].Start)
}

func TestPlanAppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := oracleMock.NewMockInterpreter(ctrl)
	store := repository.NewMemoryStore()
	ot := otelMock.NewOtel()

	svc := service.NewAssistant(interpreter, scheduleService.NewSchedule(store, ot), ot)

	reference := time.Date(2026, 1, 5, 8, 0, 0, 0, timezone.GetLocation())

	interpreter.EXPECT().
		Interpret(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.Interpretation{
			Explanation: "A slot for a meeting.",
			Intent:      model.Intent{EventName: "Meeting"},
		}, nil)

	out, err := svc.Plan(context.Background(), dto.PlanRequest{
		Message:   "find me a slot",
		Reference: reference.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, out.DurationMinutes)
	assert.Equal(t, []string{"All"}, out.TargetAudience)
	assert.NotEmpty(t, out.Suggestions)
}

func TestPlanOracleFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := oracleMock.NewMockInterpreter(ctrl)
	store := repository.NewMemoryStore()
	ot := otelMock.NewOtel()

	svc := service.NewAssistant(interpreter, scheduleService.NewSchedule(store, ot), ot)

	interpreter.EXPECT().
		Interpret(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.Interpretation{}, assert.AnError)

	_, err := svc.Plan(context.Background(), dto.PlanRequest{Message: "anything"})
	assert.Error(t, err)
}

func TestPlanAudienceAwareSuggestions(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := oracleMock.NewMockInterpreter(ctrl)
	store := repository.NewMemoryStore()
	ot := otelMock.NewOtel()

	// Monday 09:00 is taken by a Sem 3 lecture.
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, timezone.GetLocation())
	_, err := store.Create(context.Background(), reservationModel.Reservation{
		Summary:     "Microprocessors",
		Window:      reservationModel.Window{Start: monday, End: monday.Add(time.Hour)},
		Partition:   reservationModel.PartitionRecurring,
		AudienceTag: "Sem 3",
	})
	require.NoError(t, err)

	svc := service.NewAssistant(interpreter, scheduleService.NewSchedule(store, ot), ot)

	reference := time.Date(2026, 1, 5, 8, 0, 0, 0, timezone.GetLocation())

	interpreter.EXPECT().
		Interpret(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.Interpretation{
			Intent: model.Intent{TargetSemesters: []string{"Sem 3"}},
		}, nil)

	out, err := svc.Plan(context.Background(), dto.PlanRequest{
		Message:   "slot for sem 3",
		Reference: reference.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Len(t, out.Suggestions, 2)
	assert.Equal(t, monday.Add(time.Hour).Format(time.RFC3339), out.Suggestions[0].Start)
}
