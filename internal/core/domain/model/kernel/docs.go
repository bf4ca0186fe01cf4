// Package kernel provides the value objects shared by the workshop domain:
// identities (UUID), the acting user stamped on audit records (Actor), and
// calendar days used for delivery commitments (Date).
//
// Every value object rejects its zero value in Validate so that an
// uninitialised field cannot silently reach persistence.
package kernel
