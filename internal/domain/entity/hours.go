package entity

// ComputeTotalHours sums the hours of every day entry across all rows in
// encounter order. An empty row set totals 0. The function does not judge
// the values it is given; rejecting negative hours is the caller's
// validation concern.
func ComputeTotalHours(rows []TimesheetRow) float64 {
	var total float64
	for _, row := range rows {
		for _, entry := range row.Entries {
			total += entry.Hours
		}
	}
	return total
}
