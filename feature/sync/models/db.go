package models

// ClientRow represents the 'hubCLIENT' table, the CMS view of company
// data keyed by the CRM record id. Date columns are scanned as strings
// because the legacy schema mixes datetime and varchar representations.
type ClientRow struct {
	HubSpotObjectID    string  `gorm:"column:hs_object_id;primaryKey"`
	VFTStatus          *string `gorm:"column:vft_status"`
	Active             *string `gorm:"column:Active"` // textual Yes/No
	ActiveBusiness     *string `gorm:"column:active_business"`
	IsClient           *string `gorm:"column:IsClient"`
	EmployeeCount      *int    `gorm:"column:cms_employee_count"`
	RevenueCategory    *int    `gorm:"column:cms_revenue_category"`
	AssignedEC         *string `gorm:"column:cms_com_assigned_ec"`
	AssignedSC         *string `gorm:"column:cms_com_assigned_sc"`
	AssignedWL         *string `gorm:"column:cms_com_assigned_wl"`
	NewClassCode       *string `gorm:"column:cms_new_class_code"`
	MajorClient        *string `gorm:"column:com_major_client"`
	MaxTrnDate         *string `gorm:"column:cms_max_trndate"`
	LastVFTInvoiceDate *string `gorm:"column:cms_last_vft_invoice_date"`
}

// TableName overrides the table name for the client view.
func (ClientRow) TableName() string {
	return "hubCLIENT"
}

// ToRecord converts the raw row into a normalized CompanyRecord.
func (r ClientRow) ToRecord() CompanyRecord {
	return CompanyRecord{
		VFTStatus:          r.VFTStatus,
		EmployeeCount:      r.EmployeeCount,
		RevenueCategory:    r.RevenueCategory,
		AssignedEC:         r.AssignedEC,
		AssignedSC:         r.AssignedSC,
		AssignedWL:         r.AssignedWL,
		ActiveFlag:         NormalizeActiveFlag(r.Active),
		ActiveBusiness:     r.ActiveBusiness,
		IsClient:           r.IsClient,
		NewClassCode:       r.NewClassCode,
		MajorClientFlag:    r.MajorClient,
		MaxTransactionDate: NormalizeTimestamp(r.MaxTrnDate),
		LastInvoiceDate:    NormalizeTimestamp(r.LastVFTInvoiceDate),
	}
}

// CustomerRow represents the 'hubCUSTOMER' table, the CMS view of
// contact data keyed by the CRM record id.
type CustomerRow struct {
	HubSpotObjectID string  `gorm:"column:hs_object_id;primaryKey"`
	Email           *string `gorm:"column:email"`
	Phone           *string `gorm:"column:phone"`
	FirstName       *string `gorm:"column:firstname"`
	LastName        *string `gorm:"column:lastname"`
	TitleCode       *int    `gorm:"column:title_code"`
	CompanyCode     *string `gorm:"column:company_code"`
	ClientNumber    *int    `gorm:"column:client_number"`
	WorkshopDate    *string `gorm:"column:workshop_date"`
	VFTMember       *string `gorm:"column:cms_api_vftmember"`
	VFTActive       *string `gorm:"column:cms_api_vftactive"`
}

// TableName overrides the table name for the customer view.
func (CustomerRow) TableName() string {
	return "hubCUSTOMER"
}

// ToRecord converts the raw row into a normalized ContactRecord.
func (r CustomerRow) ToRecord() ContactRecord {
	return ContactRecord{
		Email:         r.Email,
		Phone:         r.Phone,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		TitleCode:     r.TitleCode,
		CompanyCode:   r.CompanyCode,
		ClientNumber:  r.ClientNumber,
		WorkshopDate:  NormalizeTimestamp(r.WorkshopDate),
		VFTMemberFlag: r.VFTMember,
		VFTActiveFlag: r.VFTActive,
	}
}

// CustomerLink represents the identity link columns of the 'customer'
// table: at most one CRM record id per customer reference number.
type CustomerLink struct {
	RefNo string  `gorm:"column:cst_ref_no;primaryKey"`
	HubID *string `gorm:"column:cst_hub_id"`
}

// TableName overrides the table name for the contact identity link.
func (CustomerLink) TableName() string {
	return "customer"
}

// CompanyLink represents the identity link columns of the 'company'
// table: at most one CRM record id per company map id.
type CompanyLink struct {
	MapID string  `gorm:"column:com_map_id;primaryKey"`
	HubID *string `gorm:"column:com_hub_id"`
}

// TableName overrides the table name for the company identity link.
func (CompanyLink) TableName() string {
	return "company"
}
