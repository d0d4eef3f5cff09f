package constants

// Sesi log emosi harian. Urutan slot: pagi dulu, lalu siang.
const (
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"

	MaxLogsPerChildPerDay = 2
)

var SessionOrder = []string{SessionMorning, SessionAfternoon}
