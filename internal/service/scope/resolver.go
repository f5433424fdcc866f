package scope

import (
	"context"
	"fmt"

	"github.com/webwhiz/hrms-backend/internal/domain/user"
)

// Resolver turns a requester id into the set of users they may see.
type Resolver struct {
	users user.UserRepository
}

func NewResolver(users user.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve loads the requester and applies user.VisibleUserIDs.
func (r *Resolver) Resolve(ctx context.Context, requesterID string) (user.User, user.Visibility, error) {
	requester, err := r.users.GetByID(ctx, requesterID)
	if err != nil {
		return user.User{}, user.Visibility{}, fmt.Errorf("resolve requester %s: %w", requesterID, err)
	}
	return requester, requester.Visibility(), nil
}
