// Package access decides whether an actor may perform an action on a
// resource. Role capabilities come from a casbin policy; ownership is checked
// against the resource owner.
package access

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/Natili254/Eveflow/internal/domain"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// Resource kinds.
const (
	KindEvent       = "event"
	KindApplication = "application"
	KindPayment     = "payment"
	KindDashboard   = "dashboard"
)

// Actions.
const (
	ActionList     = "list"
	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionWithdraw = "withdraw"
	ActionPay      = "pay"
)

var defaultPolicy = [][]string{
	{string(domain.RoleVendor), KindEvent, ActionList},
	{string(domain.RoleVendor), KindApplication, "*"},
	{string(domain.RoleVendor), KindPayment, "*"},
	{string(domain.RoleVendor), KindDashboard, ActionRead},
}

// Resource identifies what an actor wants to touch. OwnerID is zero for
// collections and for checks made before the resource is loaded.
type Resource struct {
	Kind    string
	Action  string
	OwnerID int64
}

// Policy evaluates access decisions.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewPolicy builds a policy from the built-in vendor rules.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load access model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("new enforcer: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicy); err != nil {
		return nil, fmt.Errorf("add default policy: %w", err)
	}
	return &Policy{enforcer: e}, nil
}

// NewPolicyFromFile loads rules from a casbin CSV policy file instead of the
// built-in ones.
func NewPolicyFromFile(path string) (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load access model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(path))
	if err != nil {
		return nil, fmt.Errorf("load access policy %s: %w", path, err)
	}
	return &Policy{enforcer: e}, nil
}

// Check returns nil when actor may act on res, ErrAccessDenied when the role
// lacks the capability and ErrNotOwner when the resource belongs to someone
// else.
func (p *Policy) Check(actor domain.Actor, res Resource) error {
	ok, err := p.enforcer.Enforce(string(actor.Role), res.Kind, res.Action)
	if err != nil {
		return fmt.Errorf("enforce %s/%s: %w", res.Kind, res.Action, err)
	}
	if !ok {
		return domain.ErrAccessDenied
	}
	if res.OwnerID != 0 && res.OwnerID != actor.ID {
		return domain.ErrNotOwner
	}
	return nil
}
