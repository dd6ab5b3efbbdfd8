package company

const (
	ColName         = "Company Name"
	ColWebsite      = "Website"
	ColPhone        = "Phone"
	ColCompanySize  = "Company Size"
	ColHeadquarters = "Headquarters"
	ColURL          = "LinkedIn URL"
)

// Columns is the CSV header, in file order. ColURL is the upsert key.
var Columns = []string{ColName, ColWebsite, ColPhone, ColCompanySize, ColHeadquarters, ColURL}

type Record struct {
	Name         string `json:"company_name"`
	Website      string `json:"website"`
	Phone        string `json:"phone"`
	CompanySize  string `json:"company_size"`
	Headquarters string `json:"headquarters"`
	URL          string `json:"linkedin_url"`
}

// NewRecord returns a record for url with every attribute set to Unknown.
func NewRecord(url string) Record {
	return Record{
		Name:         Unknown,
		Website:      Unknown,
		Phone:        Unknown,
		CompanySize:  Unknown,
		Headquarters: Unknown,
		URL:          url,
	}
}

func (r Record) Field(column string) (string, bool) {
	switch column {
	case ColName:
		return r.Name, true
	case ColWebsite:
		return r.Website, true
	case ColPhone:
		return r.Phone, true
	case ColCompanySize:
		return r.CompanySize, true
	case ColHeadquarters:
		return r.Headquarters, true
	case ColURL:
		return r.URL, true
	}
	return "", false
}

func (r Record) Values() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i], _ = r.Field(c)
	}
	return out
}

// Row lays the record out following an arbitrary header. Columns the record
// doesn't know stay empty.
func (r Record) Row(header []string) []string {
	out := make([]string, len(header))
	for i, c := range header {
		out[i], _ = r.Field(c)
	}
	return out
}

func RecordFromRow(header, row []string) Record {
	var r Record
	for i, c := range header {
		if i >= len(row) {
			break
		}
		v := row[i]
		switch c {
		case ColName:
			r.Name = v
		case ColWebsite:
			r.Website = v
		case ColPhone:
			r.Phone = v
		case ColCompanySize:
			r.CompanySize = v
		case ColHeadquarters:
			r.Headquarters = v
		case ColURL:
			r.URL = v
		}
	}
	return r
}
