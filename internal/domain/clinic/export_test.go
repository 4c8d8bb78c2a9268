package clinic

import "time"

// SetClock fija el reloj del servicio en tests externos.
func SetClock(s *Service, now func() time.Time) {
	s.now = now
}
