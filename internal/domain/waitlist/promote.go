package waitlist

import (
	"sort"

	"github.com/BruksfildServices01/booking-core/internal/models"
)

// SelectBest escolhe quem promover entre as entradas candidatas:
// menor número de prioridade primeiro, empate decidido por ordem de
// registro (primeiro a entrar vence).
func SelectBest(entries []models.WaitlistEntry) (models.WaitlistEntry, bool) {
	if len(entries) == 0 {
		return models.WaitlistEntry{}, false
	}

	sorted := make([]models.WaitlistEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	return sorted[0], true
}
