package reservation

import "time"

// Overlaps: intervalos meio-abertos [start, end).
// Slot terminando exatamente quando outro começa não conflita.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
