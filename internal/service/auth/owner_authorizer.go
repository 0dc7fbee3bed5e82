package auth

import (
	"context"
	"fmt"

	"yogablocks/internal/domain"
	docsystemRepo "yogablocks/internal/domain/repositories/docsystem"
)

// OwnerBasedAuthorizer implements DocumentAuthorizer using ownership checks.
// A user may modify a document they created. Reads are not checked here.
type OwnerBasedAuthorizer struct {
	docRepo docsystemRepo.DocumentRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(docRepo docsystemRepo.DocumentRepository) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{docRepo: docRepo}
}

// CanModifyDocument checks that userID created the document
func (a *OwnerBasedAuthorizer) CanModifyDocument(ctx context.Context, userID, documentID string) error {
	if userID == "" {
		return fmt.Errorf("no user identity: %w", domain.ErrUnauthorized)
	}

	doc, err := a.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document for auth: %w", err)
	}

	if doc.CreatedBy != userID {
		return &domain.ForbiddenError{
			Message: fmt.Sprintf("access denied to document %s", documentID),
		}
	}
	return nil
}
