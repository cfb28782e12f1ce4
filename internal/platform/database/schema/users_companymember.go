package schema

// UserCompanyMemberTable represents the 'users.companymember' table linking
// accounts to the companies they may administer.
type UserCompanyMemberTable struct {
	Table     string
	UserID    string
	CompanyID string
	CreatedAt string
}

// UserCompanyMember is the schema definition for users.companymember
var UserCompanyMember = UserCompanyMemberTable{
	Table:     "users.companymember",
	UserID:    "userid",
	CompanyID: "companyid",
	CreatedAt: "createdat",
}

func (t UserCompanyMemberTable) Columns() []string {
	return []string{t.UserID, t.CompanyID, t.CreatedAt}
}
