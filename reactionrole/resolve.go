package reactionrole

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Resolver turns bare role names into role ids.
type Resolver struct {
	roles RoleService
}

// NewResolver constructs a *Resolver.
func NewResolver(roles RoleService) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve returns d with RoleID set. A definition that is already resolved
// is returned as is. Otherwise the first role named exactly d.Name is used,
// and a new role is created when there is none.
func (r *Resolver) Resolve(ctx context.Context, guildID string, d Definition) (Definition, error) {
	if d.Resolved() {
		return d, nil
	}

	roles, err := r.roles.Roles(ctx, guildID)
	if err != nil {
		return d, &ResolutionError{Name: d.Name, Op: "fetch", Err: err}
	}

	for _, role := range roles {
		if role.Name == d.Name {
			d.RoleID = role.ID
			return d, nil
		}
	}

	role, err := r.roles.CreateRole(ctx, guildID, d.Name)
	if err != nil {
		return d, &ResolutionError{Name: d.Name, Op: "create", Err: err}
	}
	d.RoleID = role.ID
	return d, nil
}

// ResolveAll resolves every definition concurrently and returns them in
// input order. It waits for all of them before returning the first error.
// Roles created before a failure are left in place.
func (r *Resolver) ResolveAll(ctx context.Context, guildID string, defs []Definition) ([]Definition, error) {
	resolved := make([]Definition, len(defs))

	var g errgroup.Group
	for i, d := range defs {
		g.Go(func() error {
			rd, err := r.Resolve(ctx, guildID, d)
			if err != nil {
				return err
			}
			resolved[i] = rd
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
