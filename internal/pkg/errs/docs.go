// Package errs provides the error taxonomy of the workshop.
//
// Every error type wraps a sentinel so callers classify with errors.Is and
// never by message:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: input that
//     fails validation (see IsValidation)
//   - ErrObjectNotFound: an unknown client or order
//   - ErrVersionIsInvalid: an optimistic revision check lost to a concurrent write
//   - ErrInvalidTransition: a stage change other than one step forward
//   - ErrMissingProof: delivery attempted without photo or signature; the
//     MissingProofError lists which
//   - ErrPersistenceFailure: the store or the attachment backend failed
//   - ErrOrderIsBusy: the per-order lock is held by another writer
//
// Constructors come in pairs, with and without a cause. The cause is kept for
// logs and errors.Is but is never part of the classification.
package errs
