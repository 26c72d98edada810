package accessdb

import (
	"fmt"

	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/types/permission"
)

type grantDB struct {
	Code  string `db:"code"`
	Scope string `db:"scope"`
}

type overrideDB struct {
	Code  string `db:"code"`
	Scope string `db:"scope"`
	Allow bool   `db:"allow"`
}

func toBusMemberGrants(dbGrants []grantDB, dbOvrs []overrideDB) (accessbus.MemberGrants, error) {
	mg := accessbus.MemberGrants{
		Grants:    make([]accessbus.Grant, 0, len(dbGrants)),
		Overrides: make([]accessbus.Override, 0, len(dbOvrs)),
	}

	for _, db := range dbGrants {
		code, err := permission.ParseCode(db.Code)
		if err != nil {
			return accessbus.MemberGrants{}, fmt.Errorf("parse code: %w", err)
		}

		scope, err := permission.ParseScope(db.Scope)
		if err != nil {
			return accessbus.MemberGrants{}, fmt.Errorf("parse scope: %w", err)
		}

		mg.Grants = append(mg.Grants, accessbus.Grant{Code: code, Scope: scope})
	}

	for _, db := range dbOvrs {
		code, err := permission.ParseCode(db.Code)
		if err != nil {
			return accessbus.MemberGrants{}, fmt.Errorf("parse code: %w", err)
		}

		scope, err := permission.ParseScope(db.Scope)
		if err != nil {
			return accessbus.MemberGrants{}, fmt.Errorf("parse scope: %w", err)
		}

		mg.Overrides = append(mg.Overrides, accessbus.Override{Code: code, Scope: scope, Allow: db.Allow})
	}

	return mg, nil
}
