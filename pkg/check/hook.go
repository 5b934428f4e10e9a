package check

import (
	"fmt"
	"log"
)

// CapturePanics funnels a panic in the surrounding function into the session
// log instead of crashing. Use in a defer around check callbacks:
//
//	defer session.CapturePanics("image probe")
func (s *Session) CapturePanics(scope string) {
	if r := recover(); r != nil {
		msg := fmt.Sprintf("Unhandled error in %s: %v", scope, r)
		log.Printf("%s", msg)
		s.record(msg)
	}
}

// Go runs fn on a goroutine and funnels its failure, panic included, into
// the session log. The hook never re-throws; background failures are report
// lines, not crashes.
func (s *Session) Go(scope string, fn func() error) {
	go func() {
		defer s.CapturePanics(scope)
		if err := fn(); err != nil {
			msg := fmt.Sprintf("Unhandled error in %s: %v", scope, err)
			log.Printf("%s", msg)
			s.record(msg)
		}
	}()
}
