package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"aula/config"
)

// NewService builds an authenticated Google Calendar client from the
// configured OAuth credentials and token files.
func NewService(cfg *config.Config) *calendar.Service {
	ctx := context.Background()

	svc, err := newService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Google Calendar service")
	}

	log.Info().Msg("Connected to Google Calendar")

	return svc
}

func newService(ctx context.Context, cfg *config.Config) (*calendar.Service, error) {
	oauthConfig, err := oauthConfigFromFile(cfg.External.Calendar.CredentialsFile)
	if err != nil {
		return nil, err
	}

	token, err := tokenFromFile(cfg.External.Calendar.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("could not load calendar token: %w. Run the 'auth' command first", err)
	}

	client := oauthConfig.Client(ctx, token)

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return svc, nil
}

// OAuthConfigForAuthFlow is used by the CLI auth command for the web flow.
func OAuthConfigForAuthFlow(cfg *config.Config) (*oauth2.Config, error) {
	return oauthConfigFromFile(cfg.External.Calendar.CredentialsFile)
}

func oauthConfigFromFile(path string) (*oauth2.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	oauthConfig, err := google.ConfigFromJSON(raw, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return oauthConfig, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file %s: %w", path, err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}

	return token, nil
}

// SaveToken persists an OAuth token for later runs.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create token file %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return nil
}

// EnsureCalendar resolves a calendar by its display name, creating it when
// missing. The calendar list is paginated, so scan every page before
// deciding to create.
func EnsureCalendar(svc *calendar.Service, name, tz string) (string, error) {
	pageToken := ""

	for {
		call := svc.CalendarList.List()
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("failed to list calendars: %w", err)
		}

		for _, entry := range list.Items {
			if entry.Summary == name {
				return entry.Id, nil
			}
		}

		pageToken = list.NextPageToken
		if pageToken == "" {
			break
		}
	}

	created, err := svc.Calendars.Insert(&calendar.Calendar{
		Summary:  name,
		TimeZone: tz,
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar %q: %w", name, err)
	}

	return created.Id, nil
}
