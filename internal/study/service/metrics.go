package service

import "time"

func (s *Service) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, start)
	}
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
}

func (s *Service) incrementOpened() {
	if s.metrics != nil {
		s.metrics.IncrementOpened()
	}
}

func (s *Service) incrementMemberLookupMiss() {
	if s.metrics != nil {
		s.metrics.IncrementMemberLookupMiss()
	}
}

func (s *Service) incrementNotificationFailure() {
	if s.metrics != nil {
		s.metrics.IncrementNotificationFailure()
	}
}
