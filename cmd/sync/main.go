package main

import (
	"bufio"
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"aula/config"
	calendarInfra "aula/infras/calendar"
	"aula/infras/gemini"
	otelMocks "aula/infras/otel/mocks"
	reservationModel "aula/internal/domains/reservation/model"
	reservationRepo "aula/internal/domains/reservation/repository"
	timetableModel "aula/internal/domains/timetable/model"
	timetableOracle "aula/internal/domains/timetable/oracle"
	timetableService "aula/internal/domains/timetable/service"
	"aula/shared/constant"
	"aula/shared/logger"
	"aula/shared/timezone"
)

// The sync CLI is the operator-side companion to the HTTP service: it runs
// the OAuth consent flow once, and pushes a timetable document straight into
// the recurring partition without going through the web API.
func main() {
	logger.InitLogger()

	app := &cli.App{
		Name:  "aula-sync",
		Usage: "operator tooling for the shared hall calendar",
		Commands: []*cli.Command{
			{
				Name:   "auth",
				Usage:  "run the Google OAuth consent flow and store the token",
				Action: runAuth,
			},
			{
				Name:  "timetable",
				Usage: "extract a timetable document and sync it as recurring classes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path to the timetable document (PDF or image)",
						Required: true,
					},
				},
				Action: runTimetable,
			},
			{
				Name:  "rollback",
				Usage: "remove every recurring entry of a cohort tag",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tag",
						Usage:    "audience tag to remove, e.g. 'Sem 4'",
						Required: true,
					},
				},
				Action: runRollback,
			},
			{
				Name:   "cleanup",
				Usage:  "delete transient events that already ended",
				Action: runCleanup,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runAuth(c *cli.Context) error {
	cfg := config.Get()

	oauthConfig, err := calendarInfra.OAuthConfigForAuthFlow(cfg)
	if err != nil {
		return err
	}

	url := oauthConfig.AuthCodeURL("state-token")
	fmt.Println("Open the following URL in a browser and authorize access:")
	fmt.Println()
	fmt.Println("  " + url)
	fmt.Println()
	fmt.Print("Paste the authorization code here: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(c.Context, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := calendarInfra.SaveToken(cfg.External.Calendar.TokenFile, token); err != nil {
		return err
	}

	fmt.Println("Token saved to", cfg.External.Calendar.TokenFile)

	return nil
}

func runTimetable(c *cli.Context) error {
	cfg := config.Get()
	ot := otelMocks.NewOtel()

	path := c.String("file")

	document, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(document) > constant.MaxDocumentBytes {
		return fmt.Errorf("%s exceeds the 5 MB document limit", path)
	}

	extractor := timetableOracle.NewExtractor(gemini.New(cfg), ot)

	fmt.Println("Extracting timetable, this can take a moment...")

	extracted, err := extractor.ExtractTimetable(c.Context, document, detectMIMEType(path, document))
	if err != nil {
		return err
	}

	tag := reservationModel.NormalizeSemester(extracted.Metadata.Semester)
	branch := extracted.Metadata.Branch

	fmt.Printf("Detected cohort: %s (%s), %d events\n\n", tag, branch, len(extracted.Events))

	for _, event := range extracted.Events {
		fmt.Printf("  %-10s %s-%s  %s\n", event.Day, event.StartTime, event.EndTime, event.Summary)
	}

	reader := bufio.NewReader(os.Stdin)

	semesterStart, err := promptDate(reader, "Semester start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	semesterEnd, err := promptDate(reader, "Semester end date   (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	if semesterEnd.Before(semesterStart) {
		return fmt.Errorf("semester end is before semester start")
	}

	fmt.Print("Write these events to the recurring calendar? [y/N]: ")

	answer, _ := reader.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		fmt.Println("Aborted, nothing written.")

		return nil
	}

	store := reservationRepo.New(cfg, ot)
	created := 0

	for _, event := range extracted.Events {
		if err := syncOne(c.Context, store, event, tag, branch, semesterStart, semesterEnd); err != nil {
			fmt.Printf("  FAIL %-30s %v\n", event.Summary, err)

			continue
		}

		created++
		fmt.Printf("  OK   %s (%s)\n", event.Summary, event.Day)
	}

	fmt.Printf("\nDone: %d of %d events created for %s\n", created, len(extracted.Events), tag)

	if created == 0 && len(extracted.Events) > 0 {
		return fmt.Errorf("no events could be created")
	}

	return nil
}

func syncOne(
	ctx context.Context,
	store reservationRepo.Store,
	event timetableModel.Event,
	tag, branch string,
	semesterStart, semesterEnd time.Time,
) error {
	firstDay, err := timetableService.FirstOccurrence(semesterStart, event.Day)
	if err != nil {
		return err
	}

	startClock, err := time.Parse(constant.ClockFormat, event.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time %q", event.StartTime)
	}

	endClock, err := time.Parse(constant.ClockFormat, event.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time %q", event.EndTime)
	}

	window, err := reservationModel.NewWindow(
		combine(firstDay, startClock),
		combine(firstDay, endClock),
	)
	if err != nil {
		return err
	}

	_, err = store.Create(ctx, reservationModel.Reservation{
		Summary:     event.Summary,
		Window:      window,
		Partition:   reservationModel.PartitionRecurring,
		AudienceTag: tag,
		Branch:      branch,
		Creator:     constant.SystemCreator,
		Recurrence:  timetableService.BuildRecurrenceRule(firstDay.Weekday(), semesterEnd),
	})

	return err
}

func runRollback(c *cli.Context) error {
	cfg := config.Get()
	store := reservationRepo.New(cfg, otelMocks.NewOtel())

	tag := c.String("tag")

	removed, err := store.DeleteByAudienceTag(c.Context, tag)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d recurring entries for %s\n", removed, tag)

	return nil
}

func runCleanup(c *cli.Context) error {
	cfg := config.Get()
	store := reservationRepo.New(cfg, otelMocks.NewOtel())

	removed, err := store.DeleteExpiredTransient(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d past transient events\n", removed)

	return nil
}

func promptDate(reader *bufio.Reader, prompt string) (time.Time, error) {
	fmt.Print(prompt)

	line, err := reader.ReadString('\n')
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read date: %w", err)
	}

	parsed, err := timezone.Parse(constant.DayFormat, strings.TrimSpace(line))
	if err != nil {
		return time.Time{}, fmt.Errorf("dates must be YYYY-MM-DD")
	}

	return parsed, nil
}

func detectMIMEType(path string, document []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		return byExt
	}

	return http.DetectContentType(document)
}

func combine(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, timezone.GetLocation())
}
