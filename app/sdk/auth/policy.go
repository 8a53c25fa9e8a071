package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/jcpaschoal/headless-cms/business/types/actions"
	"github.com/jcpaschoal/headless-cms/business/types/resource"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

// A role holds its own permissions plus those of every role it inherits
// through g.
const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type permission struct {
	role role.Role
	res  resource.Resource
	act  actions.Action
}

// Reads are not listed. They only need an authenticated principal of the
// tenant.
var permissions = []permission{
	{role.Editor, resource.ContentType, actions.Create},
	{role.Editor, resource.ContentType, actions.Update},
	{role.Editor, resource.Content, actions.Create},
	{role.Editor, resource.Content, actions.Update},
	{role.Editor, resource.Content, actions.Publish},

	{role.Admin, resource.Tenant, actions.Create},
	{role.Admin, resource.Tenant, actions.Update},
	{role.Admin, resource.ContentType, actions.Delete},
	{role.Admin, resource.Content, actions.Delete},
	{role.Admin, resource.User, actions.Get},
	{role.Admin, resource.User, actions.Create},
	{role.Admin, resource.User, actions.Update},
	{role.Admin, resource.User, actions.Delete},
}

// admin inherits editor, editor inherits viewer.
var inherits = [][2]role.Role{
	{role.Admin, role.Editor},
	{role.Editor, role.Viewer},
}

func newEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	rules := make([][]string, len(permissions))
	for i, p := range permissions {
		rules[i] = []string{p.role.String(), p.res.String(), p.act.String()}
	}

	if _, err := e.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}

	for _, in := range inherits {
		if _, err := e.AddGroupingPolicy(in[0].String(), in[1].String()); err != nil {
			return nil, fmt.Errorf("add role %s -> %s: %w", in[0], in[1], err)
		}
	}

	return e, nil
}
