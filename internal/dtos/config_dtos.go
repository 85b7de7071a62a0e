package dtos

/*
ConfigResponse feeds every dropdown in the wizard. Lists are unique, trimmed,
first-seen order; citiesByProvince groups the City/Town column (which may hold
comma-separated lists per row) under each row's province.
*/
type ConfigResponse struct {
	Ok bool `json:"ok"`

	Categories  []string `json:"categories"`
	Departments []string `json:"departments"`
	Priorities  []string `json:"priorities"`
	Statuses    []string `json:"statuses"`
	Provinces   []string `json:"provinces"`

	PropertyTypes     []string `json:"propertyTypes"`
	ExtrasCols        []string `json:"extrasCols"`
	DurationHours     []string `json:"durationHours"`
	NumberOfCleanings []string `json:"numberOfCleanings"`
	RenewPlans        []string `json:"renewPlans"`

	CitiesByProvince map[string][]string `json:"citiesByProvince"`

	ServiceTypes []string `json:"serviceTypes"`
}
