package services

import "context"

// DocumentAuthorizer checks if a user can modify documents.
// Current implementation: ownership-based (created_by == user).
// Reads are open to every authenticated user because the catalog is shared.
type DocumentAuthorizer interface {
	// CanModifyDocument returns domain.ErrNotFound for a missing document and
	// domain.ErrForbidden when the user is not the owner
	CanModifyDocument(ctx context.Context, userID, documentID string) error
}
