package restaurant

// TimeRange is a single open/close interval, wall-clock "HH:MM".
type TimeRange struct {
	Open  string
	Close string
}

// OperatingHours holds the per-day schedule. A nil day means closed.
type OperatingHours struct {
	Monday    *TimeRange
	Tuesday   *TimeRange
	Wednesday *TimeRange
	Thursday  *TimeRange
	Friday    *TimeRange
	Saturday  *TimeRange
	Sunday    *TimeRange
}
