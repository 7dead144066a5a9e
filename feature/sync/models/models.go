package models

// CompanyRecord is a normalized snapshot of a CMS client row, ready to
// be pushed as CRM company properties. Optional columns are pointers;
// nil crosses the wire as a JSON null, clearing the CRM property.
type CompanyRecord struct {
	VFTStatus          *string
	EmployeeCount      *int
	RevenueCategory    *int
	AssignedEC         *string
	AssignedSC         *string
	AssignedWL         *string
	ActiveFlag         *string // "Y", "N" or nil
	ActiveBusiness     *string
	IsClient           *string
	NewClassCode       *string
	MajorClientFlag    *string
	MaxTransactionDate *string // epoch-milliseconds string
	LastInvoiceDate    *string // epoch-milliseconds string
}

// Properties returns the CRM property map for the record.
func (r CompanyRecord) Properties() map[string]any {
	return map[string]any{
		"vft_status":                strVal(r.VFTStatus),
		"cms_employee_count":        intVal(r.EmployeeCount),
		"cms_revenue_category":      intVal(r.RevenueCategory),
		"cms_com_assigned_ec":       strVal(r.AssignedEC),
		"cms_com_assigned_sc":       strVal(r.AssignedSC),
		"cms_com_assigned_wl":       strVal(r.AssignedWL),
		"company_activestatus":      strVal(r.ActiveFlag),
		"active_business":           strVal(r.ActiveBusiness),
		"isclient":                  strVal(r.IsClient),
		"cms_new_class_code":        strVal(r.NewClassCode),
		"com_major_client":          strVal(r.MajorClientFlag),
		"cms_max_trndate":           strVal(r.MaxTransactionDate),
		"cms_last_vft_invoice_date": strVal(r.LastInvoiceDate),
	}
}

// ContactRecord is a normalized snapshot of a CMS customer row, ready
// to be pushed as CRM contact properties.
type ContactRecord struct {
	Email         *string
	Phone         *string
	FirstName     *string
	LastName      *string
	TitleCode     *int
	CompanyCode   *string
	ClientNumber  *int
	WorkshopDate  *string // epoch-milliseconds string
	VFTMemberFlag *string
	VFTActiveFlag *string
}

// Properties returns the CRM property map for the record.
func (r ContactRecord) Properties() map[string]any {
	return map[string]any{
		"email":             strVal(r.Email),
		"firstname":         strVal(r.FirstName),
		"lastname":          strVal(r.LastName),
		"phone":             strVal(r.Phone),
		"title_code":        intVal(r.TitleCode),
		"company_code":      strVal(r.CompanyCode),
		"client_number":     intVal(r.ClientNumber),
		"workshop_date":     strVal(r.WorkshopDate),
		"cms_api_vftmember": strVal(r.VFTMemberFlag),
		"cms_api_vftactive": strVal(r.VFTActiveFlag),
	}
}

func strVal(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func intVal(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
