// Package resource bounds what concurrent formula evaluations may consume.
//
// A Controller combines three limits:
//
//   - a token bucket on evaluation starts
//   - a cap on evaluations in flight
//   - a byte budget for intermediate matrices and vectors
//
// Admission blocks and honors the caller's context:
//
//	release, err := rc.Admit(ctx)
//	if err != nil {
//	    return err
//	}
//	defer release()
//
// Memory reservations never block. An evaluation that cannot reserve its
// next buffer fails with a *MemoryLimitError and gives back what it holds.
//
// A nil *Controller admits everything and tracks nothing.
package resource
