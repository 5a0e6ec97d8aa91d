package domain

// Policy holds the court's booking rules. It is global per-system
// configuration, loaded once at startup and passed by value into the
// scheduling code.
type Policy struct {
	Window             OperatingWindow
	GranularityMinutes int
	MaxDurationMinutes int
	MaxAdvanceDays     int

	// RestrictedWindows are the sub-windows closed to residents on weekends
	// and public holidays (07:00-10:00 and 17:00-20:00 in the reference
	// deployment).
	RestrictedWindows []Interval

	// AdminOverlapOverride lets admins double-book. The house rule says
	// admins "override all time related booking rules"; overlap safety is
	// kept mandatory unless this is explicitly switched on.
	AdminOverlapOverride bool
}
