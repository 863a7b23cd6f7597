package models

// VisaOption is a catalog entry for a visa type select field.
type VisaOption struct {
	// ID is the ordinal position inside the catalog.
	ID int `json:"id"`
	// Name is the human-readable label.
	Name string `json:"name"`
	// Value is the backend identifier stored on visa records.
	Value string `json:"value"`
}

// ExistingVisaOptions is the catalog of visa types a client may already hold.
var ExistingVisaOptions = []VisaOption{
	{ID: 1, Name: "Entry Stamp (30 Day)", Value: "entry_stamp_30_day"},
	{ID: 2, Name: "Entry Stamp (60 Day)", Value: "entry_stamp_60_day"},
	{ID: 3, Name: "Tourist Visa (60 Day)", Value: "tourist_visa_60_day"},
	{ID: 4, Name: "Non-Immigrant O Visa (3 Month)", Value: "non_immigrant_o_visa_3_month"},
	{ID: 5, Name: "Married to Thai Visa", Value: "married_to_thai_visa"},
	{ID: 6, Name: "Thai Child Visa", Value: "thai_child_visa"},
	{ID: 7, Name: "Student Visa (Language School)", Value: "student_visa_language_school"},
	{ID: 8, Name: "Student Visa (School or University)", Value: "student_visa_school_or_university"},
	{ID: 9, Name: "Retirement Visa", Value: "retirement_visa"},
	{ID: 10, Name: "Guardian Visa", Value: "guardian_visa"},
	{ID: 11, Name: "Dependent Visa", Value: "dependent_visa"},
	{ID: 12, Name: "Non-Immigrant B Visa (3 Month)", Value: "non_immigrant_b_visa_3_month"},
	{ID: 13, Name: "Business Visa (Employment – 1 Year)", Value: "business_visa_employment_1_year"},
	{ID: 14, Name: "Retirement Visa (1 Year)", Value: "retirement_visa_1_year"},
	{ID: 15, Name: "Non-Immigrant OA Visa", Value: "non_immigrant_oa_visa"},
	{ID: 16, Name: "Elite Visa", Value: "elite_visa"},
	{ID: 17, Name: "DTV", Value: "dtv"},
	{ID: 18, Name: "LTR: Wealthy Pensioner", Value: "ltr_wealthy_pensioner"},
	{ID: 19, Name: "LTR: Wealthy Citizen", Value: "ltr_wealthy_citizen"},
	{ID: 20, Name: "LTR: Highly Skilled Professional", Value: "ltr_highly_skilled_professional"},
	{ID: 21, Name: "LTR: Work from Thailand Professional", Value: "ltr_work_from_thailand_professional"},
}

// WishedVisaOptions is the catalog of visa types a client may apply for.
var WishedVisaOptions = []VisaOption{
	{ID: 1, Name: "Renew the Existing One", Value: "renew_the_existing_one"},
	{ID: 2, Name: "Non-Immigrant O Visa (3 Month)", Value: "non_immigrant_o_visa_3_month"},
	{ID: 3, Name: "Married to Thai Visa", Value: "married_to_thai_visa"},
	{ID: 4, Name: "Thai Child Visa", Value: "thai_child_visa"},
	{ID: 5, Name: "Student Visa (Language School)", Value: "student_visa_language_school"},
	{ID: 6, Name: "Student Visa (School or University)", Value: "student_visa_school_or_university"},
	{ID: 7, Name: "Retirement Visa", Value: "retirement_visa"},
	{ID: 8, Name: "Guardian Visa", Value: "guardian_visa"},
	{ID: 9, Name: "Dependent Visa", Value: "dependent_visa"},
	{ID: 10, Name: "Non-Immigrant B Visa (3 Month)", Value: "non_immigrant_b_visa_3_month"},
	{ID: 11, Name: "Business Visa (Employment – 1 Year)", Value: "business_visa_employment_1_year"},
	{ID: 12, Name: "Retirement Visa (1 Year)", Value: "retirement_visa_1_year"},
	{ID: 13, Name: "Non-Immigrant OA Visa", Value: "non_immigrant_oa_visa"},
	{ID: 14, Name: "Elite Visa", Value: "elite_visa"},
	{ID: 15, Name: "DTV", Value: "dtv"},
	{ID: 16, Name: "LTR: Wealthy Pensioner", Value: "ltr_wealthy_pensioner"},
	{ID: 17, Name: "LTR: Wealthy Citizen", Value: "ltr_wealthy_citizen"},
	{ID: 18, Name: "LTR: Highly Skilled Professional", Value: "ltr_highly_skilled_professional"},
	{ID: 19, Name: "LTR: Work from Thailand Professional", Value: "ltr_work_from_thailand_professional"},
}

// VisaName resolves a catalog value to its label, falling back to the raw
// value for entries the catalog no longer carries.
func VisaName(options []VisaOption, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Name
		}
	}
	return value
}
