package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

// StatusFromRecord keeps whatever the backend stored so unknown values still
// reach the badge as-is. Only an empty status becomes new.
func StatusFromRecord(raw string) Status {
	if raw == "" {
		return StatusNew
	}
	return Status(raw)
}

// NormalizeStatus is used on writes: anything unknown is stored as new.
func NormalizeStatus(raw string) Status {
	if s := Status(raw); s.Valid() {
		return s
	}
	return StatusNew
}

func InitialStatus() Status {
	return StatusNew
}
