package forecast

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Label returns the short month name for forecast month i. Forecasts start
// in January and wrap every twelve months.
func Label(i int) string {
	if i < 0 {
		return ""
	}
	return monthNames[i%12]
}
