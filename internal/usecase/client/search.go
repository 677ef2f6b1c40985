package client

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/models"
	"github.com/BruksfildServices01/booking-calendar/internal/validators"
)

const MaxSuggestions = 20

// SearchClients backs the client suggestions of the appointment form.
type SearchClients struct {
	repo domain.Repository
}

func NewSearchClients(repo domain.Repository) *SearchClients {
	return &SearchClients{repo: repo}
}

// Execute matches query against name, surname, email and, by digits,
// phone. An empty query lists everyone, up to MaxSuggestions.
func (uc *SearchClients) Execute(
	ctx context.Context,
	workspaceID uint,
	query string,
) ([]models.Client, error) {

	clients, err := uc.repo.ListClients(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	digits := validators.DigitsOnly(q)

	out := make([]models.Client, 0, min(len(clients), MaxSuggestions))
	for _, c := range clients {
		if q == "" || matches(c, q, digits) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(fullName(out[i])) < strings.ToLower(fullName(out[j]))
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out, nil
}

func matches(c models.Client, q, digits string) bool {
	if strings.Contains(strings.ToLower(fullName(c)), q) ||
		strings.Contains(strings.ToLower(c.Email), q) {
		return true
	}
	return digits != "" && strings.Contains(validators.DigitsOnly(c.Phone), digits)
}

func fullName(c models.Client) string {
	return strings.TrimSpace(c.Name + " " + c.Surname)
}
