package tasks

// Statistics keys, as returned by GetTaskStatistics.
const (
	StatTotal        = "Total"
	StatPending      = "Pending"
	StatInProgress   = "InProgress"
	StatCompleted    = "Completed"
	StatOverdue      = "Overdue"
	StatDueToday     = "DueToday"
	StatDueThisWeek  = "DueThisWeek"
	StatHighPriority = "HighPriority"
)

// StatisticKeys lists the statistics keys in display order.
var StatisticKeys = []string{
	StatTotal, StatPending, StatInProgress, StatCompleted,
	StatOverdue, StatDueToday, StatDueThisWeek, StatHighPriority,
}

// Statistics maps each StatisticKeys entry to a count.
type Statistics map[string]int

// GetTaskStatistics counts the active collection.
func (s *Store) GetTaskStatistics() Statistics {
	today := s.Today()
	weekEnd := today.AddDays(7)

	stats := make(Statistics, len(StatisticKeys))
	for _, k := range StatisticKeys {
		stats[k] = 0
	}

	for _, t := range s.tasks {
		stats[StatTotal]++
		switch t.Status {
		case StatusPending:
			stats[StatPending]++
		case StatusInProgress:
			stats[StatInProgress]++
		case StatusDone:
			stats[StatCompleted]++
		}
		if t.IsOverdue(today) {
			stats[StatOverdue]++
		}
		if !t.IsDone() && t.DueDate == today {
			stats[StatDueToday]++
		}
		if !t.IsDone() && !t.DueDate.Before(today) && !t.DueDate.After(weekEnd) {
			stats[StatDueThisWeek]++
		}
		if t.Priority == PriorityHigh || t.Priority == PriorityCritical {
			stats[StatHighPriority]++
		}
	}
	return stats
}
