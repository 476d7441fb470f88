package permission

import (
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

const RoleAdmin = "admin"

// Resources and actions guarded by the admin API.
const (
	ResourceEntitlements = "entitlements"
	ResourceNotifier     = "notifier"

	ActionRead = "read"
	ActionRun  = "run"
)

// DefaultPolicies are granted to the admin role on every start.
var DefaultPolicies = [][]string{
	{RoleAdmin, ResourceEntitlements, ActionRead},
	{RoleAdmin, ResourceNotifier, ActionRun},
}

// InitDefaultPolicies adds any missing default policy. Existing rules,
// including operator-added ones, are left alone.
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, policy := range DefaultPolicies {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add default permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return err
		}
	}

	log.Infow("default permissions initialized", "count", len(DefaultPolicies))
	return nil
}
