package approleassignment

import (
	"context"
	"fmt"
	"log/slog"

	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Directory is the source of service principals.
type Directory interface {
	// FindServicePrincipals returns the principals matching an OData filter
	// with their appRoleAssignments populated.
	FindServicePrincipals(ctx context.Context, filter string) ([]ServicePrincipal, error)
	// GetServicePrincipal returns a single principal with its appRoles.
	GetServicePrincipal(ctx context.Context, id string) (*ServicePrincipal, error)
}

type Resolver struct {
	dir     Directory
	workers int
	logger  *slog.Logger
}

type ResolverOption func(*Resolver)

// WithWorkers bounds the number of concurrent resource lookups. Zero or
// negative means unbounded.
func WithWorkers(n int) ResolverOption {
	return func(r *Resolver) {
		r.workers = n
	}
}

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func NewResolver(dir Directory, opts ...ResolverOption) *Resolver {
	r := &Resolver{dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve lists the app role assignments of the selected service principal,
// each joined with the name of the role on its resource. Assignments whose
// resource or role cannot be found are dropped. A failure fetching any
// resource fails the whole call.
func (r *Resolver) Resolve(ctx context.Context, sel Selector) ([]Assignment, error) {
	filter, err := sel.Filter()
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Looking up service principal", "filter", filter)
	principals, err := r.dir.FindServicePrincipals(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(principals) == 0 {
		return nil, m365errors.NewNotFoundError("app registration not found")
	}

	sp := principals[0]
	resources, err := r.fetchResources(ctx, resourceIds(sp.AppRoleAssignments))
	if err != nil {
		return nil, err
	}

	return join(sp.AppRoleAssignments, resources), nil
}

// resourceIds returns the distinct resource ids in first-seen order.
func resourceIds(assignments []AppRoleAssignment) []string {
	seen := make(map[string]struct{}, len(assignments))
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.ResourceId]; ok {
			continue
		}
		seen[a.ResourceId] = struct{}{}
		ids = append(ids, a.ResourceId)
	}
	return ids
}

func (r *Resolver) fetchResources(ctx context.Context, ids []string) (map[string]*ServicePrincipal, error) {
	slots := make([]*ServicePrincipal, len(ids))

	var g errgroup.Group
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}

	for i, id := range ids {
		g.Go(func() error {
			r.logger.Debug("Fetching resource service principal", "id", id)
			sp, err := r.dir.GetServicePrincipal(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get service principal %s: %w", id, err)
			}
			slots[i] = sp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byId := make(map[string]*ServicePrincipal, len(slots))
	for _, sp := range slots {
		if sp != nil {
			byId[sp.Id] = sp
		}
	}
	return byId, nil
}

func join(assignments []AppRoleAssignment, resources map[string]*ServicePrincipal) []Assignment {
	results := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		resource, ok := resources[a.ResourceId]
		if !ok {
			continue
		}
		role, ok := findRole(resource.AppRoles, a.AppRoleId)
		if !ok {
			continue
		}
		results = append(results, Assignment{
			AppRoleId:           a.AppRoleId,
			ResourceDisplayName: a.ResourceDisplayName,
			ResourceId:          a.ResourceId,
			RoleId:              role.Id,
			RoleName:            role.Value,
		})
	}
	return results
}

func findRole(roles []AppRole, id string) (AppRole, bool) {
	for _, role := range roles {
		if role.Id == id {
			return role, true
		}
	}
	return AppRole{}, false
}
