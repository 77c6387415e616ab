package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/deskboard/internal/models"
)

var demoSubjects = []string{
	"Printer on floor 2 jams on duplex",
	"VPN drops every 30 minutes",
	"New hire laptop setup",
	"Outlook search returns nothing",
	"Replace failing NAS drive",
	"Firewall rule for payroll vendor",
	"Shared mailbox permissions",
	"Phone system voicemail to email",
	"Backup job failed overnight",
	"Renew SSL certificate for portal",
	"Wi-Fi dead zone in warehouse",
	"Migrate file share to cloud",
	"Reset MFA for field staff",
	"QuickBooks license transfer",
	"Monitor flickers after update",
}

var demoCompanies = []string{"Acme Dental", "Northwind Legal", "Blue Fern Clinic", "Harbor Freight Co"}

var demoAssignees = []string{"alex", "sam", "jordan", ""}

var demoPriorities = []models.Priority{
	models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent,
}

// SeedDemo inserts count demo tickets spread across the board columns, plus
// one closed ticket that stays off the board. It returns the created tickets.
func SeedDemo(ctx context.Context, repo *Repository, count int) ([]*models.Ticket, error) {
	created := make([]*models.Ticket, 0, count+1)
	for i := 0; i < count; i++ {
		t, err := repo.Create(ctx, NewTicketParams{
			Subject:    demoSubjects[i%len(demoSubjects)],
			Status:     models.BoardColumns[i%len(models.BoardColumns)],
			Priority:   demoPriorities[i%len(demoPriorities)],
			Assignee:   demoAssignees[i%len(demoAssignees)],
			Company:    demoCompanies[i%len(demoCompanies)],
			CreatedAgo: fmt.Sprintf("-%d hours", count-i),
		})
		if err != nil {
			return created, fmt.Errorf("failed to seed ticket %d: %w", i+1, err)
		}
		created = append(created, t)
	}

	closed, err := repo.Create(ctx, NewTicketParams{
		Subject:  "Decommission old domain controller",
		Status:   models.StatusClosed,
		Priority: models.PriorityLow,
		Company:  demoCompanies[0],
	})
	if err != nil {
		return created, fmt.Errorf("failed to seed closed ticket: %w", err)
	}
	return append(created, closed), nil
}
